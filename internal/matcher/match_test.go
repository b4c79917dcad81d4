package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

func tx(id int64, date string, amount float64, description, company string) models.BankTransaction {
	return models.BankTransaction{
		ID:          id,
		Date:        date,
		Amount:      amount,
		Description: description,
		Company:     company,
	}
}

func TestCheckMatch(t *testing.T) {
	tests := []struct {
		name           string
		t1, t2         models.BankTransaction
		wantOK         bool
		wantConfidence float64
		wantReason     string
		wantDiff       float64
	}{
		{
			name:           "exact amount next day with keyword",
			t1:             tx(1, "2024-01-10", -5000, "網銀轉帳", ""),
			t2:             tx(2, "2024-01-11", 5000, "存入", ""),
			wantOK:         true,
			wantConfidence: 0.85,
			wantReason:     "金額完全相同、日期差 1 天、摘要含轉帳關鍵字",
			wantDiff:       0,
		},
		{
			name:           "same day exact amount",
			t1:             tx(1, "2024-03-01", -1200, "提款", ""),
			t2:             tx(2, "2024-03-01", 1200, "存款", ""),
			wantOK:         true,
			wantConfidence: 0.95,
			wantReason:     "金額完全相同、同一天",
			wantDiff:       0,
		},
		{
			name:           "wire fee difference",
			t1:             tx(1, "2024-01-10", -5000, "付款", ""),
			t2:             tx(2, "2024-01-12", 4985, "入帳", ""),
			wantOK:         true,
			wantConfidence: 0.6,
			wantReason:     "金額差 15 元（可能是匯費）、日期差 2 天",
			wantDiff:       15,
		},
		{
			name:           "different companies capped at 1.0",
			t1:             tx(1, "2024-01-10", -5000, "匯款", "甲公司"),
			t2:             tx(2, "2024-01-10", 5000, "匯款", "乙公司"),
			wantOK:         true,
			wantConfidence: 1.0,
			wantReason:     "金額完全相同、同一天、摘要含轉帳關鍵字、不同公司帳戶",
			wantDiff:       0,
		},
		{
			name:   "same sign rejected",
			t1:     tx(1, "2024-01-10", 5000, "", ""),
			t2:     tx(2, "2024-01-10", 5000, "", ""),
			wantOK: false,
		},
		{
			name:   "amount difference beyond tolerance",
			t1:     tx(1, "2024-01-10", -5000, "", ""),
			t2:     tx(2, "2024-01-10", 5101, "", ""),
			wantOK: false,
		},
		{
			name:           "amount difference at tolerance",
			t1:             tx(1, "2024-01-10", -5000, "", ""),
			t2:             tx(2, "2024-01-10", 5100, "", ""),
			wantOK:         true,
			wantConfidence: 0.75,
			wantReason:     "金額差 100 元（可能是匯費）、同一天",
			wantDiff:       100,
		},
		{
			name:   "date difference beyond tolerance",
			t1:     tx(1, "2024-01-10", -5000, "", ""),
			t2:     tx(2, "2024-01-14", 5000, "", ""),
			wantOK: false,
		},
		{
			name:           "date difference at tolerance",
			t1:             tx(1, "2024-01-10", -5000, "", ""),
			t2:             tx(2, "2024-01-13", 5000, "", ""),
			wantOK:         true,
			wantConfidence: 0.8,
			wantReason:     "金額完全相同、日期差 3 天",
			wantDiff:       0,
		},
		{
			name:   "unparseable date rejected",
			t1:     tx(1, "not-a-date", -5000, "", ""),
			t2:     tx(2, "2024-01-10", 5000, "", ""),
			wantOK: false,
		},
		{
			name:           "same company no bonus",
			t1:             tx(1, "2024-01-10", -5000, "", "甲公司"),
			t2:             tx(2, "2024-01-10", 5000, "", "甲公司"),
			wantOK:         true,
			wantConfidence: 0.95,
			wantReason:     "金額完全相同、同一天",
			wantDiff:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := checkMatch(tt.t1, tt.t2)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.InDelta(t, tt.wantConfidence, res.Confidence, 1e-9)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.InDelta(t, tt.wantDiff, res.AmountDiff, 1e-9)
		})
	}
}

func TestCheckMatchSymmetric(t *testing.T) {
	t1 := tx(1, "2024-01-10", -5000, "網銀轉帳", "甲公司")
	t2 := tx(2, "2024-01-12", 4985, "存入", "乙公司")

	r12, ok12 := checkMatch(t1, t2)
	r21, ok21 := checkMatch(t2, t1)

	assert.True(t, ok12)
	assert.True(t, ok21)
	assert.Equal(t, r12.Confidence, r21.Confidence)
	assert.Equal(t, r12.AmountDiff, r21.AmountDiff)
}

func TestHasTransferKeyword(t *testing.T) {
	assert.True(t, hasTransferKeyword("台銀網轉手續費"))
	assert.True(t, hasTransferKeyword("調撥資金"))
	assert.False(t, hasTransferKeyword("超商消費"))
	assert.False(t, hasTransferKeyword(""))
}
