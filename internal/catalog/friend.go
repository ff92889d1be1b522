package catalog

import "soulmatch/internal/models"

var friendQuestions = []models.Question{
	{ID: 1, Text: "如果一起旅行，你希望的行程规划风格是？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("每分钟都排满", "大致有安排", "随性走停", "躺平型旅行", "完全临时起意")},
	{ID: 2, Text: "你对AA制或轮流请客的态度是？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("必须精确AA到分", "大致AA", "轮流请客", "谁有空谁付", "关系好不计较")},
	{ID: 3, Text: "聚会时如果有人迟到，你的容忍度？", Dimension: models.DimensionCommunication, Weight: 1, Options: scale("5分钟内必须到", "15分钟尚可", "半小时算正常", "1小时内都行", "来不来无所谓")},
	{ID: 4, Text: "你认为好朋友应该隔多久见一次面？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("每周必须见", "每两周", "每月一次", "每季度", "一年见几次也行")},

	{ID: 5, Text: "朋友向你借钱（不小的数目），你的态度？", Dimension: models.DimensionFinance, Weight: 2, Options: scale("关系再好也不借", "写欠条才借", "看关系和数额", "关系好就借", "朋友开口必须帮")},
	{ID: 6, Text: "朋友深夜emo找你吐槽，你的反应？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("不接受深夜打扰", "可以但希望简短", "陪聊但不给建议", "认真分析给建议", "随叫随到全力陪伴")},
	{ID: 7, Text: "你会主动分享自己的私事或秘密吗？", Dimension: models.DimensionIntimacy, Weight: 1.5, Options: scale("从不分享", "很少分享", "看关系亲疏", "经常分享", "无话不谈")},
	{ID: 8, Text: "如果朋友做了让你不舒服的事，你会怎么处理？", Dimension: models.DimensionValues, Weight: 2, Options: scale("直接说出来", "找机会委婉提", "暗示一下", "忍一忍算了", "默默疏远")},
}

var friendDimensions = map[models.Dimension]models.DimensionDetail{
	models.DimensionLifestyle:     {Title: "第一部分：玩乐默契", Description: "关于旅行、聚会、见面频率的考察。"},
	models.DimensionFinance:       {Title: "第二部分：金钱观", Description: "关于AA制和借钱态度的考察。"},
	models.DimensionCommunication: {Title: "第三部分：沟通边界", Description: "关于时间边界和情绪支持的考察。"},
	models.DimensionIntimacy:      {Title: "第四部分：亲密程度", Description: "关于分享隐私和信任度的考察。"},
	models.DimensionValues:        {Title: "第五部分：处事原则", Description: "关于冲突处理方式的考察。"},
}
