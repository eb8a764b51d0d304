package planner

import (
	"fmt"
)

// ReportPlan 周报生成的静态建议内容
type ReportPlan struct {
	StatusLine  string   `json:"statusLine"`
	PlanBullets []string `json:"planBullets"`
	MatchDayCue string   `json:"matchDayCue"`
}

var legsStatusLines = map[string]string{
	"Fresh":  "Legs feel fresh — hold your load steady and sharpen up.",
	"Medium": "Legs are workable — keep volume moderate and prioritize quality.",
	"Heavy":  "Legs are heavy — cut volume this week and focus on recovery.",
	"Tweaky": "Something feels tweaky — keep everything sub-maximal and pain-free.",
}

var legsStatusBullets = map[string][]string{
	"Fresh": {
		"2 short strength blocks (glutes, calves)",
		"1 tempo run, finish with strides",
	},
	"Medium": {
		"1 strength block, moderate load",
		"1 easy aerobic session, no sprinting",
	},
	"Heavy": {
		"Mobility and light activation only",
		"One short walk or spin, zone 1",
	},
	"Tweaky": {
		"Isometric holds in pain-free ranges",
		"Skip sprint work until symptoms settle",
	},
}

// BuildReportPlan 由周报输入生成确定性的计划内容
func BuildReportPlan(matchDay string, trainingDays int, legsStatus string) *ReportPlan {
	statusLine, ok := legsStatusLines[legsStatus]
	if !ok {
		statusLine = legsStatusLines["Medium"]
	}

	bullets, ok := legsStatusBullets[legsStatus]
	if !ok {
		bullets = legsStatusBullets["Medium"]
	}

	out := make([]string, 0, len(bullets)+1)
	out = append(out, bullets...)
	if trainingDays <= 1 {
		out = append(out, "With one training day or fewer, make it count: full-body, short, crisp")
	} else {
		out = append(out, fmt.Sprintf("Spread the work across your %d training days", trainingDays))
	}

	return &ReportPlan{
		StatusLine:  statusLine,
		PlanBullets: out,
		MatchDayCue: fmt.Sprintf(
			"Taper from two days before %s; nothing heavy on matchday minus one. Save your legs for the last %d minutes of each half.",
			matchDay, LateWindowMinutes(45)),
	}
}
