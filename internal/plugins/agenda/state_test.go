package agenda

import (
	"testing"
	"time"
)

func TestNewStateDefaults(t *testing.T) {
	now := date(2025, time.June, 11)
	st := NewState(now)

	if st.View != ViewWeek {
		t.Errorf("initial view = %v, want week", st.View)
	}
	if !st.Current.Equal(now) {
		t.Errorf("initial date = %v, want %v", st.Current, now)
	}
	if st.Panel.Visible {
		t.Error("panel must start hidden")
	}
	if st.Generation != 0 {
		t.Errorf("initial generation = %d, want 0", st.Generation)
	}
}

func TestNavigateStepsByViewUnit(t *testing.T) {
	start := date(2025, time.June, 11)
	tests := []struct {
		view ViewType
		dir  string
		want time.Time
	}{
		{ViewDay, DirNext, date(2025, time.June, 12)},
		{ViewDay, DirPrev, date(2025, time.June, 10)},
		{ViewWeek, DirNext, date(2025, time.June, 18)},
		{ViewWeek, DirPrev, date(2025, time.June, 4)},
		{ViewMonth, DirNext, date(2025, time.July, 11)},
		{ViewMonth, DirPrev, date(2025, time.May, 11)},
		{ViewYear, DirNext, date(2026, time.June, 11)},
		{ViewYear, DirPrev, date(2024, time.June, 11)},
	}

	for _, tt := range tests {
		t.Run(string(tt.view)+"_"+tt.dir, func(t *testing.T) {
			st := NewState(start)
			st.View = tt.view
			st.Navigate(tt.dir, start)
			if !st.Current.Equal(tt.want) {
				t.Errorf("navigated to %v, want %v", st.Current, tt.want)
			}
		})
	}
}

func TestNavigateTodayResets(t *testing.T) {
	now := date(2025, time.June, 11)
	st := NewState(date(2024, time.January, 1))
	st.Navigate(DirToday, now)
	if !st.Current.Equal(now) {
		t.Errorf("today navigated to %v, want %v", st.Current, now)
	}
}

func TestNavigateBumpsGeneration(t *testing.T) {
	st := NewState(date(2025, time.June, 11))
	gen := st.Generation

	st.Navigate(DirNext, time.Now())
	if st.Generation != gen+1 {
		t.Errorf("navigate: generation = %d, want %d", st.Generation, gen+1)
	}
	st.ChangeView(ViewMonth)
	if st.Generation != gen+2 {
		t.Errorf("view change: generation = %d, want %d", st.Generation, gen+2)
	}
	st.OpenPanel(date(2025, time.June, 15), 5)
	if st.Generation != gen+3 {
		t.Errorf("panel open: generation = %d, want %d", st.Generation, gen+3)
	}
	st.ClosePanel()
	if st.Generation != gen+3 {
		t.Errorf("panel close must not bump generation, got %d", st.Generation)
	}
}

func TestOpenPanelSwitchesToDayView(t *testing.T) {
	st := NewState(date(2025, time.June, 1))
	st.View = ViewMonth

	st.OpenPanel(date(2025, time.June, 15), 5)

	if st.View != ViewDay {
		t.Errorf("view after click = %v, want day", st.View)
	}
	if st.ActiveButton() != "day" {
		t.Errorf("active button = %q, want day", st.ActiveButton())
	}
	if !st.Current.Equal(date(2025, time.June, 15)) {
		t.Errorf("current date = %v, want clicked date", st.Current)
	}
	if !st.Panel.Visible {
		t.Fatal("panel must be visible after click")
	}
	if got := st.Panel.Content.Summary(); got != "5 reserva(s)" {
		t.Errorf("summary = %q, want 5 reserva(s)", got)
	}
}

func TestOpenPanelIsIdempotent(t *testing.T) {
	st := NewState(date(2025, time.June, 1))
	st.OpenPanel(date(2025, time.June, 15), 5)
	st.OpenPanel(date(2025, time.June, 16), 2)

	if got := st.Panel.Content.Total; got != 2 {
		t.Errorf("reopen must replace content, total = %d, want 2", got)
	}
}

func TestClosePanelKeepsContent(t *testing.T) {
	st := NewState(date(2025, time.June, 1))
	st.OpenPanel(date(2025, time.June, 15), 5)
	st.ClosePanel()

	if st.Panel.Visible {
		t.Error("panel must hide on close")
	}
	if st.Panel.Content == nil {
		t.Error("closing must keep the last content")
	}
}

func TestStateTitle(t *testing.T) {
	tests := []struct {
		view ViewType
		date time.Time
		want string
	}{
		{ViewWeek, date(2025, time.June, 11), "Junio 2025"},
		{ViewMonth, date(2025, time.January, 1), "Enero 2025"},
		{ViewDay, date(2024, time.December, 31), "Diciembre 2024"},
		{ViewYear, date(2025, time.June, 11), "2025"},
	}
	for _, tt := range tests {
		st := State{View: tt.view, Current: tt.date}
		if got := st.Title(); got != tt.want {
			t.Errorf("%v title = %q, want %q", tt.view, got, tt.want)
		}
	}
}

func TestPanelContentLongDate(t *testing.T) {
	// 2025-06-11 is a Wednesday.
	p := PanelContent{Date: date(2025, time.June, 11), Total: 3}
	want := "miércoles, 11 de junio de 2025"
	if got := p.LongDate(); got != want {
		t.Errorf("long date = %q, want %q", got, want)
	}
}

func TestParseViewRoundTrip(t *testing.T) {
	for _, name := range []string{"day", "week", "month", "year"} {
		v, ok := ParseView(name)
		if !ok {
			t.Fatalf("ParseView(%q) failed", name)
		}
		if v.Button() != name {
			t.Errorf("Button() = %q, want %q", v.Button(), name)
		}
	}
	if _, ok := ParseView("decade"); ok {
		t.Error("unknown view must not parse")
	}
}
