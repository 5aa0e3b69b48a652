package progress

import "testing"

func sampleSubjects() []Subject {
	return []Subject{
		{ID: "s1", Name: "Mathematics", Topics: []Topic{
			{ID: "t1", Title: "Fractions", MasteryLevel: 80},
			{ID: "t2", Title: "Decimals", MasteryLevel: 60},
		}},
		{ID: "s2", Name: "Physics", Topics: nil},
		{ID: "s3", Name: "History", Topics: []Topic{
			{ID: "t3", Title: "Antiquity", MasteryLevel: 30},
		}},
	}
}

func TestBuildSubjectViews_Average(t *testing.T) {
	views := BuildSubjectViews(sampleSubjects())
	if len(views) != 3 {
		t.Fatalf("len = %d, want 3", len(views))
	}
	if !views[0].HasMastery || views[0].Mastery != 70 {
		t.Errorf("Mathematics = %+v, want mastery 70", views[0])
	}
	if views[2].Mastery != 30 {
		t.Errorf("History mastery = %v, want 30", views[2].Mastery)
	}
}

func TestBuildSubjectViews_EmptyTopicsIsAbsentNotZero(t *testing.T) {
	views := BuildSubjectViews(sampleSubjects())
	phys := views[1]
	if phys.HasMastery {
		t.Error("subject with no topics must report absent mastery, not a value")
	}
}

func TestBandFor_InclusiveLowerBound(t *testing.T) {
	th := SubjectThresholds // 75 / 50
	if BandFor(74, th) == BandFor(75, th) {
		t.Error("band(74) must differ from band(75)")
	}
	cases := []struct {
		v    float64
		want Band
	}{
		{100, BandHigh}, {75, BandHigh}, {74.9, BandMedium},
		{50, BandMedium}, {49.9, BandLow}, {0, BandLow},
	}
	for _, c := range cases {
		if got := BandFor(c.v, th); got != c.want {
			t.Errorf("BandFor(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestBandFor_PerScreenThresholds(t *testing.T) {
	// 45 sits below the subject medium cutoff but above the topic one.
	if BandFor(45, SubjectThresholds) != BandLow {
		t.Error("45 should be low on the subject screen")
	}
	if BandFor(45, TopicThresholds) != BandMedium {
		t.Error("45 should be medium on the topic screen")
	}
}

func TestFilterSubjects_CaseInsensitiveNarrowing(t *testing.T) {
	views := BuildSubjectViews(sampleSubjects())

	got := FilterSubjects(views, "MATH")
	if len(got) != 1 || got[0].Name != "Mathematics" {
		t.Errorf("FilterSubjects(MATH) = %+v", got)
	}

	// Pure narrowing: every result must be in the original.
	got = FilterSubjects(views, "i")
	for _, v := range got {
		found := false
		for _, orig := range views {
			if orig.ID == v.ID {
				found = true
			}
		}
		if !found {
			t.Errorf("filter invented subject %q", v.Name)
		}
	}

	if got := FilterSubjects(views, "  "); len(got) != len(views) {
		t.Error("blank query should not filter")
	}
}

func TestSortSubjectViews_AbsentSortsBelowZero(t *testing.T) {
	views := BuildSubjectViews(sampleSubjects())
	desc := SortSubjectViews(views, SortDesc)
	if desc[0].Name != "Mathematics" || desc[len(desc)-1].Name != "Physics" {
		t.Errorf("desc order = %v, %v, %v", desc[0].Name, desc[1].Name, desc[2].Name)
	}
	asc := SortSubjectViews(views, SortAsc)
	if asc[0].Name != "Physics" {
		t.Errorf("asc order should put no-score subject first, got %v", asc[0].Name)
	}
}

func TestSortSubjectViews_DoesNotMutateInput(t *testing.T) {
	views := BuildSubjectViews(sampleSubjects())
	first := views[0].Name
	SortSubjectViews(views, SortAsc)
	if views[0].Name != first {
		t.Error("sort mutated its input")
	}
}

func TestTriStateCycle_ReturnsToStart(t *testing.T) {
	m := SortNone
	for i := 0; i < 3; i++ {
		m = NextTriState(m)
	}
	if m != SortNone {
		t.Errorf("three toggles ended at %v, want SortNone", m)
	}
}

func TestBiStateCycle_ReturnsToStart(t *testing.T) {
	m := NextBiState(SortNone) // enters at desc
	start := m
	for i := 0; i < 2; i++ {
		m = NextBiState(m)
	}
	if m != start {
		t.Errorf("two toggles ended at %v, want %v", m, start)
	}
}

func TestSortTopics(t *testing.T) {
	topics := []Topic{
		{Title: "a", MasteryLevel: 10},
		{Title: "b", MasteryLevel: 90},
		{Title: "c", MasteryLevel: 50},
	}
	desc := SortTopics(topics, SortDesc)
	if desc[0].Title != "b" || desc[2].Title != "a" {
		t.Errorf("desc = %+v", desc)
	}
	if topics[0].Title != "a" {
		t.Error("sort mutated its input")
	}
}

func TestFindSubject(t *testing.T) {
	subjects := sampleSubjects()
	if s := FindSubject(subjects, "s2"); s == nil || s.Name != "Physics" {
		t.Errorf("FindSubject(s2) = %+v", s)
	}
	if s := FindSubject(subjects, "missing"); s != nil {
		t.Errorf("FindSubject(missing) = %+v, want nil", s)
	}
}
