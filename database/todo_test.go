package database

import (
	"testing"
	"time"

	"github.com/mitoneko/neko-todo/models"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		order models.SortOrder
		want  string
	}{
		{models.StartAsc, " ORDER BY start_date, update_date"},
		{models.StartDesc, " ORDER BY start_date DESC, update_date"},
		{models.EndAsc, " ORDER BY end_date, update_date"},
		{models.EndDesc, " ORDER BY end_date DESC, update_date"},
		{models.UpdateAsc, " ORDER BY update_date, end_date"},
		{models.UpdateDesc, " ORDER BY update_date DESC, end_date"},
	}
	for _, tt := range tests {
		if got := orderClause(tt.order); got != tt.want {
			t.Errorf("orderClause(%v) = %q, want %q", tt.order, got, tt.want)
		}
	}
}

func TestOrderClause_UnknownFallsBackToEndAsc(t *testing.T) {
	if got := orderClause(models.SortOrder("bogus")); got != " ORDER BY end_date, update_date" {
		t.Errorf("orderClause fallback = %q", got)
	}
}

func TestStartOrToday(t *testing.T) {
	if got := startOrToday(models.Date{}); !got.Equal(models.Today()) {
		t.Errorf("unset start date = %v, want today", got)
	}
	explicit := models.NewDate(2030, time.January, 2)
	if got := startOrToday(explicit); !got.Equal(explicit) {
		t.Errorf("explicit start date = %v, want %v", got, explicit)
	}
}

func TestEndOrNever(t *testing.T) {
	if got := endOrNever(models.Date{}); !got.Equal(models.Never()) {
		t.Errorf("unset end date = %v, want sentinel", got)
	}
	explicit := models.NewDate(2030, time.January, 2)
	if got := endOrNever(explicit); !got.Equal(explicit) {
		t.Errorf("explicit end date = %v, want %v", got, explicit)
	}
}
