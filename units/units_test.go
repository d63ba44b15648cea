package units

import "testing"

func TestConvertMmToSp(t *testing.T) {
	if got := SpFromMm(Mm(17.5)); got != Sp(3_263_190) {
		t.Fatalf("SpFromMm(17.5) = %v, want 3263190 sp", got)
	}
}

func TestConvertPtToSp(t *testing.T) {
	if got := SpFromPt(Pt(56.82)); got != Sp(3_723_756) {
		t.Fatalf("SpFromPt(56.82) = %v, want 3723756 sp", got)
	}
}

func TestConvertSpToMm(t *testing.T) {
	if got := Sp(3_263_189).Mm(); !NearlyEqual(float64(got), 17.5) {
		t.Fatalf("Sp(3263189).Mm() = %v, want ≈17.5", got)
	}
}

func TestConvertSpToPt(t *testing.T) {
	if got := Sp(1_327_104).Pt(); !NearlyEqual(float64(got), 20.25) {
		t.Fatalf("Sp(1327104).Pt() = %v, want ≈20.25", got)
	}
}

func TestConvertPtToMm(t *testing.T) {
	if got := Pt(12.75).Mm(); !NearlyEqual(float64(got), 4.481) {
		t.Fatalf("Pt(12.75).Mm() = %v, want ≈4.481", got)
	}
}

func TestConvertMmToPt(t *testing.T) {
	if got := Mm(4.481).Pt(); !NearlyEqual(float64(got), 12.75) {
		t.Fatalf("Mm(4.481).Pt() = %v, want ≈12.75", got)
	}
}

// TestRoundTrip checks that real-unit values survive a trip through scaled
// points within the near-equality tolerance (exact for points, bounded loss
// for millimeters).
func TestRoundTrip(t *testing.T) {
	samples := []float64{0, 1, 12, 14.4, 56.82, 72, 96, 144, 1000}
	for _, v := range samples {
		if back := float64(SpFromPt(Pt(v)).Pt()); !NearlyEqual(back, v) {
			t.Fatalf("pt round trip failed: in=%g back=%g", v, back)
		}
		if back := float64(SpFromMm(Mm(v)).Mm()); !NearlyEqual(back, v) {
			t.Fatalf("mm round trip failed: in=%g back=%g", v, back)
		}
	}
}

func TestSpArithmetic(t *testing.T) {
	a, b := Sp(3_263_190), Sp(1_327_104)
	if got := a.Add(b); got != Sp(4_590_294) {
		t.Fatalf("Add = %v, want 4590294 sp", got)
	}
	if got := a.Sub(b); got != Sp(1_936_086) {
		t.Fatalf("Sub = %v, want 1936086 sp", got)
	}
	if !(MinusInfinity < b && b < PlusInfinity) {
		t.Fatalf("infinity bounds must enclose finite measures")
	}
}

func TestNearlyEqual(t *testing.T) {
	cases := []struct {
		a, b float64
		want bool
	}{
		{3.0, 2.99999, true},
		{4.0, 3.999, false},
		{0, 0, true},
		{1.5, 1.5, true},
		{-17.5, -17.5000001, true},
	}
	for _, c := range cases {
		if got := NearlyEqual(c.a, c.b); got != c.want {
			t.Fatalf("NearlyEqual(%g, %g) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
