package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Fixture contents of a minimal KiCad project export.
const (
	ProjectName = "proj"
	BOMContent  = "Id;Designator;Quantity;Package\n1;R1;10k;R_0603\n"
	POSContent  = "Ref,PosX,PosY,Side,Rot,Val\nR1,1.0,2.0,top,90,10k\n"
)

// Expected converted outputs of the fixture.
const (
	BOMConverted = "Designator,Comment,Footprint\n1,10k,R1\n"
	POSConverted = "Designator,Mid X,Mid Y,Layer,Rotation\nR1,1.0,2.0,top,90\n"
)

// WriteProject creates a temporary directory holding proj.kicad_pcb,
// proj.csv and proj-all-pos.csv and returns its path.
func WriteProject(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		ProjectName + ".kicad_pcb":   "(kicad_pcb (version 20221018))\n",
		ProjectName + ".csv":         BOMContent,
		ProjectName + "-all-pos.csv": POSContent,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir
}
