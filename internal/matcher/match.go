package matcher

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

const (
	// AmountTolerance allows paired amounts to differ by wire fees,
	// in currency units.
	AmountTolerance = 100.0

	// DateToleranceDays allows the two legs of a transfer to settle on
	// different days.
	DateToleranceDays = 3
)

// transferKeywords mark descriptions that typically accompany internal
// transfers (轉帳/匯款 and friends).
var transferKeywords = []string{"轉帳", "匯款", "轉提", "網轉", "內轉", "調撥"}

// matchResult scores one candidate pairing.
type matchResult struct {
	Confidence float64
	Reason     string
	AmountDiff float64
}

// checkMatch decides whether t1 and t2 could be the two legs of one internal
// transfer. Requirements: opposite signs, absolute amounts within
// AmountTolerance, dates within DateToleranceDays. Confidence starts at 0.5
// and accumulates per matching factor, capped at 1.0. The function is
// symmetric in its arguments.
func checkMatch(t1, t2 models.BankTransaction) (matchResult, bool) {
	// One leg in, one leg out.
	if (t1.Amount > 0 && t2.Amount > 0) || (t1.Amount < 0 && t2.Amount < 0) {
		return matchResult{}, false
	}

	amountDiff := math.Abs(math.Abs(t1.Amount) - math.Abs(t2.Amount))
	if amountDiff > AmountTolerance {
		return matchResult{}, false
	}

	d1, err := time.Parse("2006-01-02", t1.Date)
	if err != nil {
		return matchResult{}, false
	}
	d2, err := time.Parse("2006-01-02", t2.Date)
	if err != nil {
		return matchResult{}, false
	}
	daysDiff := int(math.Abs(d1.Sub(d2).Hours()) / 24)
	if daysDiff > DateToleranceDays {
		return matchResult{}, false
	}

	confidence := 0.5
	var reasons []string

	if amountDiff == 0 {
		confidence += 0.3
		reasons = append(reasons, "金額完全相同")
	} else {
		confidence += 0.1
		reasons = append(reasons, fmt.Sprintf("金額差 %s 元（可能是匯費）", formatAmount(amountDiff)))
	}

	if daysDiff == 0 {
		confidence += 0.15
		reasons = append(reasons, "同一天")
	} else {
		reasons = append(reasons, fmt.Sprintf("日期差 %d 天", daysDiff))
	}

	if hasTransferKeyword(t1.Description) || hasTransferKeyword(t2.Description) {
		confidence += 0.05
		reasons = append(reasons, "摘要含轉帳關鍵字")
	}

	// Different company tags make an internal transfer between the
	// organization's own accounts more likely.
	if t1.Company != "" && t2.Company != "" && t1.Company != t2.Company {
		confidence += 0.05
		reasons = append(reasons, "不同公司帳戶")
	}

	if confidence > 1 {
		confidence = 1
	}

	return matchResult{
		Confidence: confidence,
		Reason:     strings.Join(reasons, "、"),
		AmountDiff: amountDiff,
	}, true
}

func hasTransferKeyword(description string) bool {
	for _, k := range transferKeywords {
		if strings.Contains(description, k) {
			return true
		}
	}
	return false
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
