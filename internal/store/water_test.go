package store_test

import (
	"testing"
	"time"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/model"
)

func waterOn(day int, hour int, ml float64) model.WaterLog {
	return model.WaterLog{
		Day:        codec.Date{Year: 2026, Month: time.March, Day: day},
		OccurredAt: at(day, hour),
		AmountMl:   ml,
	}
}

func TestWaterTotalForDay(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	for _, w := range []model.WaterLog{
		waterOn(2, 8, 250),
		waterOn(2, 12, 500),
		waterOn(3, 8, 300),
	} {
		if _, err := st.InsertWater(w); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	total, err := st.WaterTotalForDay(codec.Date{Year: 2026, Month: time.March, Day: 2})
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 750 {
		t.Fatalf("total = %v, want 750", total)
	}

	total, err = st.WaterTotalForDay(codec.Date{Year: 2026, Month: time.March, Day: 9})
	if err != nil {
		t.Fatalf("total for empty day: %v", err)
	}
	if total != 0 {
		t.Fatalf("total for empty day = %v, want 0", total)
	}
}

func TestWaterForDay(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	for _, w := range []model.WaterLog{
		waterOn(2, 8, 250),
		waterOn(2, 12, 500),
		waterOn(3, 8, 300),
	} {
		if _, err := st.InsertWater(w); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, err := st.WaterForDay(codec.Date{Year: 2026, Month: time.March, Day: 2})
	if err != nil {
		t.Fatalf("water for day: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d logs, want 2", len(got))
	}
	if got[0].AmountMl != 500 || got[1].AmountMl != 250 {
		t.Fatalf("logs not newest first: %+v", got)
	}
}

func TestInsertWaterValidation(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if _, err := st.InsertWater(model.WaterLog{Day: codec.Date{Year: 2026, Month: time.March, Day: 2}, OccurredAt: at(2, 8)}); err == nil {
		t.Fatalf("expected error for zero amount")
	}
	if _, err := st.InsertWater(model.WaterLog{OccurredAt: at(2, 8), AmountMl: 250}); err == nil {
		t.Fatalf("expected error for missing day")
	}
}

func TestDeleteWaterUpdatesTotal(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	day := codec.Date{Year: 2026, Month: time.March, Day: 2}
	id, err := st.InsertWater(waterOn(2, 8, 250))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := st.InsertWater(waterOn(2, 12, 500)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if n, err := st.DeleteWater(id); err != nil || n != 1 {
		t.Fatalf("delete = %d, %v", n, err)
	}
	total, err := st.WaterTotalForDay(day)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 500 {
		t.Fatalf("total = %v, want 500", total)
	}
}
