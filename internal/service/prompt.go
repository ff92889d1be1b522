package service

import (
	"fmt"
	"strings"

	"soulmatch/internal/models"
)

// Section markers the model must emit verbatim, one per line, before each section.
const (
	MarkerVerdict   = "[[VERDICT]]"
	MarkerStrengths = "[[STRENGTHS]]"
	MarkerFrictions = "[[FRICTIONS]]"
	MarkerAdvice    = "[[ADVICE]]"
)

// Partition thresholds on the per-question difference, and how many examples
// of each kind go into the prompt.
const (
	StrengthMaxDifference = 1
	FrictionMinDifference = 3
	MaxExamplesPerSection = 5
)

// Persona is the voice the report is written in
type Persona struct {
	Role          string
	Task          string
	Rules         []string
	StrengthTitle string
	FrictionTitle string
	StrengthLine  string // format: dimension, id, question, nameA, labelA, nameB, labelB
	FrictionLine  string // same arguments as StrengthLine
	VerdictHint   string
	StrengthHint  string
	FrictionHint  string
	AdviceHint    string
}

var DefaultPersonas = map[models.Scenario]Persona{
	models.ScenarioCouple: {
		Role: "你是一位阅人无数的“资深情感观察员”，擅长用最直白、接地气的大白话分析人际关系。",
		Task: "你的任务是根据 %s 和 %s 两个人的 %d 道问卷结果，生成一份“一针见血”但又充满温度的相性分析报告。两人基础匹配度为 %d%%。",
		Rules: []string{
			"**说人话**：不要用心理学术语，要像老朋友聊天一样自然。",
			"**直击痛点**：不要模棱两可，好的坏的都要直接指出来。",
			"**代入名字**：在分析中自然地提到 %s 和 %s 的名字，不要只说“A”和“B”。",
		},
		StrengthTitle: "优势维度（差异 <= 1）：两人天然契合点",
		FrictionTitle: "核心雷区（差异 >= 3）：未来潜在的冲突爆发点",
		StrengthLine:  "- [%s] Q.%d（%s）两人答案几乎一致，%s：%s，%s：%s。",
		FrictionLine:  "- [%s] Q.%d（%s）差异巨大（%s：%s vs %s：%s），这是硬性矛盾，需要深入关注。",
		VerdictHint:   "核心结论：一句话总结，直指本质，不要废话。",
		StrengthHint:  "关键优势分析：列点阐述，说明这些默契在生活中意味着什么。",
		FrictionHint:  "潜在雷区预警：列点阐述，直接指出如果不注意会吵什么架。",
		AdviceHint:    "长期相处建议：给出马上能用的实操建议。",
	},
	models.ScenarioFriend: {
		Role: "你是一个嘴有点损但很靠谱的“友情鉴定师”，说话轻松幽默，像群聊里最会接梗的那个朋友。",
		Task: "请根据 %s 和 %s 的 %d 道朋友默契度问卷，写一份好玩又有洞察的友情鉴定报告。两人默契度为 %d%%。",
		Rules: []string{
			"**轻松有梗**：可以调侃，但不要刻薄，整体要让两个人看完想互相转发。",
			"**具体到事**：结合旅行、请客、借钱、深夜聊天这些真实场景来说。",
			"**代入名字**：用 %s 和 %s 的名字来写，不要只说“A”和“B”。",
		},
		StrengthTitle: "默契时刻（差异 <= 1）：你俩天生一对好搭子",
		FrictionTitle: "友情雷点（差异 >= 3）：小心翻车的地方",
		StrengthLine:  "- [%s] Q.%d（%s）想法几乎一样，%s：%s，%s：%s。",
		FrictionLine:  "- [%s] Q.%d（%s）完全两个频道（%s：%s vs %s：%s），容易在这里闹别扭。",
		VerdictHint:   "一句话鉴定：给这段友情下个好玩的定义。",
		StrengthHint:  "默契清单：列点说说你们在哪些事上特别合拍。",
		FrictionHint:  "翻车预警：列点说说哪些事容易让你们闹不愉快。",
		AdviceHint:    "友情保鲜建议：给几条马上能用的相处小技巧。",
	},
}

type PromptBuilder struct {
	Personas map[models.Scenario]Persona
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{Personas: DefaultPersonas}
}

// Partition splits a matrix into strengths and frictions, keeping catalog order.
func Partition(matrix []models.ComparisonPoint) (strengths, frictions []models.ComparisonPoint) {
	for _, c := range matrix {
		switch {
		case c.Difference <= StrengthMaxDifference:
			strengths = append(strengths, c)
		case c.Difference >= FrictionMinDifference:
			frictions = append(frictions, c)
		}
	}
	return strengths, frictions
}

// BuildPrompt renders the analysis request for the model. The output always
// asks for the four marker-delimited sections regardless of persona.
func (b *PromptBuilder) BuildPrompt(ctx *models.AIContext) string {
	persona, ok := b.Personas[ctx.Scenario]
	if !ok {
		persona = DefaultPersonas[models.DefaultScenario]
	}
	nameA := ctx.Host.DisplayName("A")
	nameB := ctx.Guest.DisplayName("B")
	strengths, frictions := Partition(ctx.ComparisonMatrix)

	var sb strings.Builder
	sb.WriteString(persona.Role)
	sb.WriteString(fmt.Sprintf(persona.Task, nameA, nameB, len(ctx.ComparisonMatrix), ctx.MatchScore))
	sb.WriteString("\n\n请注意：")
	for i, rule := range persona.Rules {
		if strings.Contains(rule, "%s") {
			rule = fmt.Sprintf(rule, nameA, nameB)
		}
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, rule))
	}
	sb.WriteString(fmt.Sprintf("\n%d. **结构清晰**：严格按照下方的格式输出。", len(persona.Rules)+1))

	sb.WriteString("\n\n--- " + persona.StrengthTitle + " ---")
	writeExamples(&sb, persona.StrengthLine, strengths, nameA, nameB)
	sb.WriteString("\n\n--- " + persona.FrictionTitle + " ---")
	writeExamples(&sb, persona.FrictionLine, frictions, nameA, nameB)

	sb.WriteString("\n\n请根据上述数据和风格要求生成报告。报告必须依次包含以下四个部分，")
	sb.WriteString("每个部分以单独一行的标记开头，标记必须原样输出，不要加编号、标题或其他符号：\n")
	sb.WriteString(MarkerVerdict + "\n" + persona.VerdictHint + "\n")
	sb.WriteString(MarkerStrengths + "\n" + persona.StrengthHint + "\n")
	sb.WriteString(MarkerFrictions + "\n" + persona.FrictionHint + "\n")
	sb.WriteString(MarkerAdvice + "\n" + persona.AdviceHint + "\n")
	return sb.String()
}

func writeExamples(sb *strings.Builder, line string, points []models.ComparisonPoint, nameA, nameB string) {
	if len(points) == 0 {
		sb.WriteString("\n- （无）")
		return
	}
	if len(points) > MaxExamplesPerSection {
		points = points[:MaxExamplesPerSection]
	}
	for _, c := range points {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(line, c.Dimension, c.ID, c.Question, nameA, c.ALabel, nameB, c.BLabel))
	}
}

// OfflineMarker opens the narrative of a report produced without the model.
const OfflineMarker = "[系统提示：AI 服务暂时不可用，以下是基于原始数据的分析预览]"

// Summary is the one-line headline shown above a report.
func Summary(scenario models.Scenario, score int, offline bool) string {
	headline := fmt.Sprintf("基于数据的灵魂契合度：%d%%", score)
	if scenario == models.ScenarioFriend {
		headline = fmt.Sprintf("基于数据的朋友默契度：%d%%", score)
	}
	if offline {
		headline += " (离线模式)"
	}
	return headline
}
