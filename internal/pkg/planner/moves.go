package planner

import (
	"math"
	"time"

	"github.com/elmparc/plan_go_server/internal/model"
)

// TODO: 上线前替换为理疗师审核过的正式内容
var lateGameLegsMoves = []model.SessionMove{
	{Name: "Hip flexor lunge stretch", Prescription: "30s each side", Notes: "Keep torso upright"},
	{Name: "Glute bridge hold", Prescription: "2 × 12 reps"},
	{Name: "Calf raise (slow eccentric)", Prescription: "2 × 15 reps"},
	{Name: "Single-leg balance", Prescription: "30s each side"},
	{Name: "Step-up hold", Prescription: "8 reps each side"},
}

var injuryPreventionMoves = []model.SessionMove{
	{Name: "Nordic curl (partial)", Prescription: "3 × 6 reps", Notes: "Controlled descent only"},
	{Name: "Copenhagen side plank", Prescription: "20s each side"},
	{Name: "Standing hamstring stretch", Prescription: "30s each side"},
	{Name: "Groin adductor slide", Prescription: "10 reps each side"},
	{Name: "Hip 90/90 rotation", Prescription: "8 reps each side"},
}

// MovesForFocus 按训练重点取动作表
func MovesForFocus(focus string) []model.SessionMove {
	if focus == model.FocusInjuryPrevention {
		return injuryPreventionMoves
	}
	return lateGameLegsMoves
}

// LateWindowMinutes 半场末段窗口（约为半场时长的 44%）
func LateWindowMinutes(halfLengthMinutes int) int {
	return int(math.Round(float64(halfLengthMinutes) * 0.44))
}

// NextWeekdays 从明天起顺延，取 count 个工作日（周一至周五，UTC）
func NextWeekdays(now time.Time, count int) []time.Time {
	results := make([]time.Time, 0, count)
	d := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)

	for len(results) < count {
		wd := d.Weekday()
		if wd >= time.Monday && wd <= time.Friday {
			results = append(results, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return results
}
