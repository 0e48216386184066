package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const samplePolicy = `
ĐIỀU 3: CHẾ ĐỘ LÀM VIỆC
Tăng ca tối đa 40 giờ mỗi tháng, lương tăng ca bằng 150%.
Ca đêm được tính từ 22h00 đến 06h00.
Ca liên tục: thời gian ngủ được tính 50% đơn giá.
Nhân viên được nghỉ tối thiểu 8 giờ giữa hai ca.
Nhân viên được hưởng 12 ngày phép năm và 5 ngày nghỉ ốm.
Phụ cấp tiền ăn: 30.000 đồng/ngày.
Phụ cấp đồng phục: 1.200 nghìn đồng/năm.
Vi phạm: trừ 50% lương ngày và lập biên bản.
`

func TestExtractConditions_FullPolicy(t *testing.T) {
	c := ExtractConditions(samplePolicy)

	if assert.NotNil(t, c.OvertimeMaxHours) {
		assert.Equal(t, 40, *c.OvertimeMaxHours)
	}
	if assert.NotNil(t, c.OvertimeRate) {
		assert.InDelta(t, 1.5, *c.OvertimeRate, 1e-9)
	}

	if assert.NotNil(t, c.NightShiftStart) {
		assert.Equal(t, "22:00", *c.NightShiftStart)
	}
	if assert.NotNil(t, c.NightShiftEnd) {
		assert.Equal(t, "06:00", *c.NightShiftEnd)
	}

	if assert.NotNil(t, c.SleepTimeRatio) {
		assert.InDelta(t, 0.5, *c.SleepTimeRatio, 1e-9)
	}
	if assert.NotNil(t, c.MinRestHours) {
		assert.Equal(t, 8, *c.MinRestHours)
	}

	if assert.NotNil(t, c.AnnualLeaveDays) {
		assert.Equal(t, 12, *c.AnnualLeaveDays)
	}
	if assert.NotNil(t, c.SickLeaveDays) {
		assert.Equal(t, 5, *c.SickLeaveDays)
	}

	if assert.NotNil(t, c.MealAllowance) {
		assert.Equal(t, int64(30_000), *c.MealAllowance)
	}
	if assert.NotNil(t, c.UniformAllowance) {
		// "1.200 nghìn" == 1,200 thousand VND
		assert.Equal(t, int64(1_200_000), *c.UniformAllowance)
	}

	if assert.NotNil(t, c.ViolationPolicy) {
		assert.Equal(t, "trừ 50% lương ngày và lập biên bản", *c.ViolationPolicy)
	}
}

func TestExtractConditions_EmptyText(t *testing.T) {
	c := ExtractConditions("hợp đồng không có điều khoản chế độ")
	assert.Nil(t, c.OvertimeMaxHours)
	assert.Nil(t, c.OvertimeRate)
	assert.Nil(t, c.NightShiftStart)
	assert.Nil(t, c.SleepTimeRatio)
	assert.Nil(t, c.MinRestHours)
	assert.Nil(t, c.AnnualLeaveDays)
	assert.Nil(t, c.MealAllowance)
	assert.Nil(t, c.ViolationPolicy)
}

func TestParseAmountUnits(t *testing.T) {
	cases := []struct {
		capture string
		matched string
		want    int64
	}{
		{"30.000", "30.000 đồng", 30_000},
		{"30", "30 nghìn đồng", 30_000},
		{"2", "2 triệu đồng", 2_000_000},
		{"1.200", "1.200 nghìn đồng", 1_200_000},
	}
	for _, tc := range cases {
		got, ok := parseAmount(tc.capture, tc.matched)
		assert.True(t, ok, tc.matched)
		assert.Equal(t, tc.want, got, tc.matched)
	}

	_, ok := parseAmount("abc", "abc đồng")
	assert.False(t, ok)
}
