package dynamics

import (
	"math"
	"testing"
)

func TestDoubleIntegrator1D(t *testing.T) {
	sys := DoubleIntegrator1D(0.1)

	if sys.XDim() != 2 || sys.NumPlayers() != 1 || sys.UDim(0) != 1 {
		t.Fatal("wrong dimensions")
	}
	if got := sys.A.At(0, 1); got != 0.1 {
		t.Errorf("A[0,1] = %v, want 0.1", got)
	}
	if got := sys.Bs[0].At(0, 0); math.Abs(got-0.005) > 1e-15 {
		t.Errorf("B[0,0] = %v, want 0.005", got)
	}
	if got := sys.Bs[0].At(1, 0); got != 0.1 {
		t.Errorf("B[1,0] = %v, want 0.1", got)
	}
}

func TestConcatenate(t *testing.T) {
	joint, err := Concatenate(DoubleIntegrator1D(0.1), DoubleIntegrator2D(0.1))
	if err != nil {
		t.Fatal(err)
	}

	dims := joint.Dims()
	if dims.NumPlayers != 2 {
		t.Fatalf("NumPlayers = %d, want 2", dims.NumPlayers)
	}
	if dims.XDim != 6 {
		t.Fatalf("XDim = %d, want 6", dims.XDim)
	}
	if dims.UDim(0) != 1 || dims.UDim(1) != 2 {
		t.Fatal("wrong control dims")
	}

	// Block diagonal: the second block starts at offset 2.
	if got := joint.A.At(0, 1); got != 0.1 {
		t.Errorf("first block A[0,1] = %v, want 0.1", got)
	}
	if got := joint.A.At(2, 4); got != 0.1 {
		t.Errorf("second block A[0,2] = %v, want 0.1", got)
	}
	if got := joint.A.At(0, 2); got != 0 {
		t.Errorf("cross-block A[0,2] = %v, want 0", got)
	}

	// Player B matrices are zero outside their own block rows.
	if got := joint.Bs[0].At(1, 0); got != 0.1 {
		t.Errorf("B0[1,0] = %v, want 0.1", got)
	}
	if got := joint.Bs[0].At(3, 0); got != 0 {
		t.Errorf("B0[3,0] = %v, want 0", got)
	}
	if got := joint.Bs[1].At(4, 0); got != 0.1 {
		t.Errorf("B1[4,0] = %v, want 0.1", got)
	}
	if got := joint.Bs[1].At(0, 0); got != 0 {
		t.Errorf("B1[0,0] = %v, want 0", got)
	}
}

func TestConcatenateRejectsMultiChannelBlocks(t *testing.T) {
	joint, err := Concatenate(DoubleIntegrator1D(0.1), DoubleIntegrator1D(0.1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Concatenate(joint); err == nil {
		t.Error("expected error for multi-channel block")
	}
	if _, err := Concatenate(); err == nil {
		t.Error("expected error for empty block list")
	}
}

func TestLinearization(t *testing.T) {
	sys := SingleIntegrator1D(0.5)
	lin := sys.Linearization(4)

	if len(lin) != 4 {
		t.Fatalf("len = %d, want 4", len(lin))
	}
	for k := range lin {
		if lin[k].A != sys.A {
			t.Error("linearization must alias the system matrices")
		}
	}
}
