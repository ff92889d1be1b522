package catalog

import "soulmatch/internal/models"

var coupleQuestions = []models.Question{
	// Lifestyle, weight 1
	{ID: 1, Text: "你对室内整洁度的要求是什么？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("随性", "较随性", "普通", "较整洁", "洁癖")},
	{ID: 2, Text: "你对伴侣的作息时间（熬夜/早起）的接受程度？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("必须同步", "尽量同步", "看情况", "不太介意", "完全不干涉")},
	{ID: 3, Text: "你对养宠物（如猫狗）的态度和意愿？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("完全不能接受", "很难接受", "中立", "可以接受", "必须有")},
	{ID: 4, Text: "你对伴侣吸烟、饮酒或其他成瘾品的态度？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("零容忍", "尽量避免", "中立", "适度即可", "无所谓")},
	{ID: 5, Text: "周末休息时，你更倾向于哪种度过方式？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("完全宅家", "倾向宅家", "看心情", "倾向外出", "必须外出活动")},
	{ID: 6, Text: "你对饮食口味的偏好（如辣度/咸淡）有多坚持？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("非常挑剔", "比较挑剔", "一般", "比较随和", "完全不挑")},
	{ID: 7, Text: "你对运动健身的频率要求是？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("从不运动", "偶尔动动", "每周1-2次", "每周3-4次", "每天必须")},
	{ID: 8, Text: "你对家中物品摆放的秩序感要求？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("乱中有序", "大致归位", "普通", "井井有条", "严丝合缝")},
	{ID: 9, Text: "对于家务分配，你更倾向于？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("随性分配", "大致分工", "看谁有空", "明确分工", "严格轮值/外包")},
	{ID: 10, Text: "你对电子产品使用时长（如刷手机/打游戏）的看法？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("希望能严格控制", "希望能少一点", "适度就好", "比较宽松", "完全自由")},
	{ID: 11, Text: "你对旅行方式的偏好？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("随性漫游", "大致规划", "半自由行", "详细攻略", "特种兵打卡")},
	{ID: 12, Text: "你对个人空间（独处时间）的需求程度？", Dimension: models.DimensionLifestyle, Weight: 1, Options: scale("希望能时刻粘在一起", "希望能多在一起", "平衡", "需要较多独处", "极度需要独处")},

	// Money, weight 1.5
	{ID: 13, Text: "在共同消费中，你倾向于AA制还是混合记账？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("严格AA", "大额AA", "轮流付", "大部分共享", "完全不分你我")},
	{ID: 14, Text: "你对伴侣的消费习惯的容忍度？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("必须节俭", "倾向节俭", "适度消费", "倾向享受", "享受当下")},
	{ID: 15, Text: "你对冲动消费的自我评级？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("从不冲动", "很少冲动", "偶尔", "经常冲动", "购物狂")},
	{ID: 16, Text: "你认为伴侣是否有知晓你所有收入和支出的权利？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("完全隐私", "保留部分隐私", "看情况", "大部分公开", "完全透明")},
	{ID: 17, Text: "你对负债消费（如信用卡/花呗）的态度？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("极度排斥", "尽量避免", "中立", "可以接受", "习以为常")},
	{ID: 18, Text: "你对投资理财的风险偏好？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("极度保守(储蓄)", "稳健理财", "平衡配置", "进取投资", "高风险高收益")},
	{ID: 19, Text: "对于大额支出（如买车/买房），决策方式倾向于？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("各自决定", "告知即可", "简单商量", "共同商议", "必须一致同意")},
	{ID: 20, Text: "你认为金钱在幸福生活中的重要性？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("够用就行", "基础保障", "重要", "非常重要", "决定性因素")},
	{ID: 21, Text: "你是否有记账的习惯？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("从不记账", "偶尔记", "记大额", "经常记", "每一笔都记")},
	{ID: 22, Text: "如果伴侣收入比你高很多或低很多，你会介意吗？", Dimension: models.DimensionFinance, Weight: 1.5, Options: scale("非常介意", "有点介意", "看情况", "不太介意", "完全不介意")},

	// Communication, weight 1.5
	{ID: 23, Text: "遇到分歧时，你倾向于立即解决还是需要冷静期？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("必须马上沟通", "倾向当天解决", "看情况", "倾向冷静后再谈", "回避并冷静处理")},
	{ID: 24, Text: "你对伴侣的朋友圈子和社交活动参与的意愿？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("希望完全融入", "希望能经常参与", "偶尔参与", "很少参与", "互不打扰")},
	{ID: 25, Text: "在关系中，你认为情绪表达应该被量化和克制吗？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("完全释放", "倾向直接表达", "看场合", "倾向克制", "高度理性克制")},
	{ID: 26, Text: "伴侣因小事生气时，你倾向于马上哄还是讲道理？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("马上哄", "先哄后道理", "看情况", "先讲道理", "坚持讲道理")},
	{ID: 27, Text: "你希望伴侣回复消息的频率是？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("秒回", "看到就回", "忙完回", "不固定", "轮回/电话联系")},
	{ID: 28, Text: "你对于“善意的谎言”的接受度？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("绝不接受", "尽量诚实", "看初衷", "可以接受", "为了和谐必须有")},
	{ID: 29, Text: "当你有负面情绪时，你希望伴侣如何处理？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("默默陪伴", "倾听不评判", "给拥抱", "给建议", "帮我分析解决")},
	{ID: 30, Text: "你认为在公共场合展示亲密行为（PDA）的尺度？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("完全拒绝", "仅限牵手", "适度亲密", "比较开放", "无视他人目光")},
	{ID: 31, Text: "你对异性（或同性）好友的边界感要求？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("极度敏感", "比较敏感", "正常社交即可", "比较宽松", "完全信任不干涉")},
	{ID: 32, Text: "你更倾向于哪种沟通风格？", Dimension: models.DimensionCommunication, Weight: 1.5, Options: scale("委婉含蓄", "比较委婉", "适中", "比较直接", "直来直去")},

	// Intimacy and family, weight 2
	{ID: 33, Text: "你对亲密接触（身体或精神）的频率和需求？", Dimension: models.DimensionIntimacy, Weight: 2, Options: scale("非常低", "较低，更重精神", "适中，平衡", "较高", "非常高，强烈依赖")},
	{ID: 34, Text: "你对伴侣的**仪式感**（如纪念日/节日）的看重程度？", Dimension: models.DimensionIntimacy, Weight: 2, Options: scale("完全不看重", "偶尔即可", "看情况", "比较看重", "必须要有，并精心准备")},
	{ID: 35, Text: "你对未来与**双方原生家庭**相处方式的期望？", Dimension: models.DimensionIntimacy, Weight: 2, Options: scale("老死不相往来", "仅限节日拜访", "适度联系，保持边界", "经常联系，互相帮助", "希望完全融入对方家庭")},
	{ID: 36, Text: "你对**生育**下一代的明确态度？", Dimension: models.DimensionIntimacy, Weight: 2, Options: scale("坚决丁克", "倾向丁克", "顺其自然", "倾向生育", "必须生育")},
	{ID: 37, Text: "你对婚前/同居**共同财产**的看法？", Dimension: models.DimensionIntimacy, Weight: 2, Options: scale("必须公正划分", "倾向区分", "看情况", "倾向共有", "完全共有不分彼此")},
	{ID: 38, Text: "如果发现伴侣与前任仍有联系，你的接受度？", Dimension: models.DimensionIntimacy, Weight: 2, Options: scale("完全不能接受", "极度介意", "看情况", "接受普通朋友关系", "完全信任，不干涉")},
	{ID: 39, Text: "你认为伴侣关系中的**安全感**主要来自于？", Dimension: models.DimensionIntimacy, Weight: 2, Options: scale("经济基础和物质承诺", "稳定的行为和时间投入", "平衡", "清晰的口头承诺和表达", "无条件的爱和信任")},
	{ID: 40, Text: "你希望伴侣如何给你提供情感支持（爱语倾向）？", Dimension: models.DimensionIntimacy, Weight: 2, Options: scale("服务行为 (做事)", "精心的礼物", "高品质的相处时间", "肯定的语言", "身体接触 (拥抱/牵手)")},

	// Core values, weight 2
	{ID: 41, Text: "在个人发展和家庭责任之间，你的首要权重？", Dimension: models.DimensionValues, Weight: 2, Options: scale("优先家庭", "倾向家庭", "平衡", "倾向事业", "优先个人事业")},
	{ID: 42, Text: "你对人生的重大风险（如投资/换城市）的看法？", Dimension: models.DimensionValues, Weight: 2, Options: scale("保守稳定", "倾向保守", "中庸", "倾向冒险", "冒险激进")},
	{ID: 43, Text: "你对承诺的看法，例如：迟到或失约的严重程度？", Dimension: models.DimensionValues, Weight: 2, Options: scale("非常看重", "比较看重", "一般", "比较包容", "理解弹性")},
	{ID: 44, Text: "在你的生活中，情感需求和理性分析哪个更重要？", Dimension: models.DimensionValues, Weight: 2, Options: scale("情感驱动", "倾向情感", "平衡", "倾向理性", "理性主导")},
	{ID: 45, Text: "你认为对错判断是否应该有绝对的标准？", Dimension: models.DimensionValues, Weight: 2, Options: scale("有绝对标准", "倾向有标准", "看情境", "倾向相对", "相对主义")},
	{ID: 46, Text: "你对“人无完人，所以不必强求改变”的认同度？", Dimension: models.DimensionValues, Weight: 2, Options: scale("完全不认同(需不断改变)", "不太认同", "中立", "比较认同", "完全认同(接纳本我)")},
	{ID: 47, Text: "你对社会时事和政治话题的关注度？", Dimension: models.DimensionValues, Weight: 2, Options: scale("完全不关心", "偶尔关注", "一般", "经常关注", "热衷讨论")},
	{ID: 48, Text: "你认为“成功”的定义更倾向于？", Dimension: models.DimensionValues, Weight: 2, Options: scale("财富地位", "社会认可", "平衡", "内心满足", "自由快乐")},
	{ID: 49, Text: "你对待“规则”的态度？", Dimension: models.DimensionValues, Weight: 2, Options: scale("严格遵守", "尽量遵守", "看情况", "灵活变通", "规则是用来打破的")},
	{ID: 50, Text: "你认为“平淡”是婚姻的最终归宿吗？", Dimension: models.DimensionValues, Weight: 2, Options: scale("绝不接受平淡", "努力抗拒", "接受但需调剂", "比较接受", "平淡才是真")},
}

var coupleDimensions = map[models.Dimension]models.DimensionDetail{
	models.DimensionLifestyle:     {Title: "第一步：生活习惯", Description: "关于日常作息、卫生、娱乐、社交等硬性习惯的考察。"},
	models.DimensionFinance:       {Title: "第二步：金钱与财务", Description: "关于消费观、储蓄、投资和财务透明度的考察。"},
	models.DimensionCommunication: {Title: "第三步：沟通与情感", Description: "关于冲突处理、社交需求、情感表达和边界感的考察。"},
	models.DimensionIntimacy:      {Title: "第四步：亲密与家庭观", Description: "关于亲密需求、生育观、原生家庭和对安全感的深层考察。"},
	models.DimensionValues:        {Title: "第五步：核心价值观", Description: "关于人生目标、道德边界、风险偏好和世界观的深层考察。"},
}
