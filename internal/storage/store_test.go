package storage

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/config"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/efe"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/nn"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/train"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/units"
)

func testRun(t *testing.T) (*Store, string, []float64) {
	t.Helper()

	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	netA := nn.New([]int{1, 10, 1}, rng)
	netB := nn.New([]int{1, 10, 1}, rng)
	sol := efe.NewAnalytic(units.SchwarzschildRadius)
	ev := train.Evaluate(netA, netB, sol, efe.DefaultDomain(), 0.1)

	history := []float64{3.0, 2.0, 1.5}
	runID, err := st.Save(config.DefaultConfig(), history, netA, netB, ev, 2*time.Second)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	return st, runID, history
}

func TestSaveAndLoadMetadata(t *testing.T) {
	st, runID, _ := testRun(t)

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Config.Iterations != config.DefaultIterations {
		t.Errorf("config not roundtripped: %d", meta.Config.Iterations)
	}
	if _, ok := meta.Metrics["chi2_dof_A"]; !ok {
		t.Error("metrics missing chi2_dof_A")
	}
}

func TestLoadHistory(t *testing.T) {
	st, runID, history := testRun(t)

	got, err := st.LoadHistory(runID)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(got) != len(history) {
		t.Fatalf("expected %d entries, got %d", len(history), len(got))
	}
	for i := range got {
		if got[i] != history[i] {
			t.Errorf("entry %d: expected %f, got %f", i, history[i], got[i])
		}
	}
}

func TestLoadNetworks(t *testing.T) {
	st, runID, _ := testRun(t)

	netA, netB, err := st.LoadNetworks(runID)
	if err != nil {
		t.Fatalf("load networks: %v", err)
	}
	if netA.NumParams() != 31 || netB.NumParams() != 31 {
		t.Error("loaded networks have wrong shape")
	}
}

func TestList(t *testing.T) {
	st, runID, _ := testRun(t)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("expected single run %s, got %v", runID, runs)
	}
}

func TestListEmptyBaseDir(t *testing.T) {
	st := New("does/not/exist")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if runs != nil {
		t.Error("expected nil for missing base dir")
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st, _, _ := testRun(t)
	if _, err := st.Load("pinn_0"); err == nil {
		t.Error("expected error for unknown run")
	}
}
