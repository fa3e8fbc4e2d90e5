package fab

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kicadfab/internal/testutil"
)

func TestRunner_AutodetectsAndConvertsBothKinds(t *testing.T) {
	dir := testutil.WriteProject(t)
	outDir := t.TempDir()
	bomOut := filepath.Join(outDir, DefaultBOMOutput)
	posOut := filepath.Join(outDir, DefaultPOSOutput)

	rec := &recorder{}
	r := NewRunner(rec, testutil.NewTestLogger(t))
	summary, err := r.Run(context.Background(), Options{
		Dir:     dir,
		Outputs: map[Kind]string{BOM: bomOut, POS: posOut},
	})
	require.NoError(t, err)
	require.Len(t, summary.Results, 2)
	assert.False(t, summary.Failed())

	assert.Equal(t, BOM, summary.Results[0].Kind)
	assert.Equal(t, filepath.Join(dir, "proj.csv"), summary.Results[0].Input)
	assert.Equal(t, POS, summary.Results[1].Kind)

	assert.Equal(t, testutil.BOMConverted, readFile(t, bomOut))
	assert.Equal(t, testutil.POSConverted, readFile(t, posOut))

	// Detection is reported before any file is opened.
	msgs := rec.messages()
	require.GreaterOrEqual(t, len(msgs), 3)
	assert.Contains(t, msgs[0], "Found")
	assert.Equal(t, "-> Guessing that BOM file is proj.csv.", msgs[1])
	assert.Equal(t, "-> Guessing that pos file is proj-all-pos.csv.", msgs[2])
}

func TestRunner_ExplicitInputsSkipDetection(t *testing.T) {
	dir := testutil.WriteProject(t)
	outDir := t.TempDir()

	rec := &recorder{}
	r := NewRunner(rec, nil)
	_, err := r.Run(context.Background(), Options{
		Dir: t.TempDir(), // no board file here
		Inputs: map[Kind]string{
			BOM: filepath.Join(dir, "proj.csv"),
			POS: filepath.Join(dir, "proj-all-pos.csv"),
		},
		Outputs: map[Kind]string{
			BOM: filepath.Join(outDir, "b.csv"),
			POS: filepath.Join(outDir, "p.csv"),
		},
	})
	require.NoError(t, err)
	for _, msg := range rec.messages() {
		assert.NotContains(t, msg, "Could not determine project name")
	}
	assert.FileExists(t, filepath.Join(outDir, "b.csv"))
	assert.FileExists(t, filepath.Join(outDir, "p.csv"))
}

func TestRunner_FailureDoesNotBlockOtherKind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "proj.kicad_pcb", "")
	writeFile(t, dir, "proj.csv", "Id;Quantity\n1;10k\n") // no Designator
	writeFile(t, dir, "proj-all-pos.csv", "Ref,PosX,PosY,Side,Rot\nR1,1,2,top,0\n")
	outDir := t.TempDir()
	bomOut := filepath.Join(outDir, "bom.csv")
	posOut := filepath.Join(outDir, "pos.csv")

	r := NewRunner(nil, nil)
	summary, err := r.Run(context.Background(), Options{
		Dir:     dir,
		Outputs: map[Kind]string{BOM: bomOut, POS: posOut},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.True(t, summary.Failed())

	assert.Equal(t, StatusFailed, summary.Results[0].Status)
	assert.Equal(t, StatusWritten, summary.Results[1].Status)
	assert.NoFileExists(t, bomOut)
	assert.FileExists(t, posOut)
}

func TestRunner_NoProjectIsSoft(t *testing.T) {
	outDir := t.TempDir()
	r := NewRunner(nil, nil)
	summary, err := r.Run(context.Background(), Options{
		Dir:     t.TempDir(),
		Outputs: map[Kind]string{BOM: filepath.Join(outDir, "b.csv"), POS: filepath.Join(outDir, "p.csv")},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusNoInput, summary.Results[0].Status)
	assert.Equal(t, StatusNoInput, summary.Results[1].Status)
}

func TestOutputFor(t *testing.T) {
	assert.Equal(t, DefaultBOMOutput, OutputFor(BOM, nil))
	assert.Equal(t, DefaultPOSOutput, OutputFor(POS, map[Kind]string{BOM: "x.csv"}))
	assert.Equal(t, "x.csv", OutputFor(BOM, map[Kind]string{BOM: "x.csv"}))
}
