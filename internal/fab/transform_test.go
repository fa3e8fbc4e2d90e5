package fab

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kicadfab/internal/testutil"
)

const posInput = "Ref,Val,Package,PosX,PosY,Rot,Side\n" +
	"C1,100n,C_0402,10.5,-3.25,90,top\n" +
	"R1,10k,R_0603,1.0,2.0,0,bottom\n" +
	"U1,MCU,QFN-32,5,5,180,top\n"

func newTransformer(t *testing.T) (*Transformer, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewTransformer(rec, testutil.NewTestLogger(t)), rec
}

func TestTransform_ProjectsAndRenamesColumns(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proj-all-pos.csv", posInput)
	out := filepath.Join(dir, "pos_to_fab.csv")

	tr, rec := newTransformer(t)
	res, err := tr.Transform(context.Background(), Request{Kind: POS, Input: in, Output: out})
	require.NoError(t, err)
	assert.Equal(t, StatusWritten, res.Status)
	assert.Equal(t, 3, res.Rows)

	// Columns are kept in selection order, rows in input order.
	assert.Equal(t, "Designator,Mid X,Mid Y,Layer,Rotation\n"+
		"C1,10.5,-3.25,top,90\n"+
		"R1,1.0,2.0,bottom,0\n"+
		"U1,5,5,top,180\n", readFile(t, out))

	assert.Equal(t, []string{"Opened " + in + ".", "Wrote output to " + out + "."}, rec.messages())
	assert.Equal(t, "success", rec.lines[1].level)
}

func TestTransform_BOMRotationRename(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proj.csv", "Id;Quantity;Designator;Value\nR1;10k;0805;x\n")
	out := filepath.Join(dir, "bom_to_fab.csv")

	tr, _ := newTransformer(t)
	_, err := tr.Transform(context.Background(), Request{Kind: BOM, Input: in, Output: out})
	require.NoError(t, err)
	assert.Equal(t, "Designator,Comment,Footprint\nR1,10k,0805\n", readFile(t, out))
}

func TestTransform_NoInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bom_to_fab.csv")

	tr, rec := newTransformer(t)
	res, err := tr.Transform(context.Background(), Request{Kind: BOM, Output: out})
	require.NoError(t, err)
	assert.Equal(t, StatusNoInput, res.Status)
	assert.Equal(t, []string{"No BOM filename given."}, rec.messages())
	assert.NoFileExists(t, out)
}

func TestTransform_InputMissing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "missing.csv")
	out := filepath.Join(dir, "pos_to_fab.csv")

	tr, rec := newTransformer(t)
	res, err := tr.Transform(context.Background(), Request{Kind: POS, Input: in, Output: out})
	require.NoError(t, err)
	assert.Equal(t, StatusInputMissing, res.Status)
	assert.Equal(t, []string{"File not found: " + in}, rec.messages())
	assert.NoFileExists(t, out)
}

func TestTransform_MissingColumnIsHardFailure(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proj-all-pos.csv", "Ref,PosX,PosY,Side\nR1,1,2,top\n")
	out := filepath.Join(dir, "pos_to_fab.csv")

	tr, rec := newTransformer(t)
	res, err := tr.Transform(context.Background(), Request{Kind: POS, Input: in, Output: out, Overwrite: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "Rot")
	assert.Equal(t, StatusFailed, res.Status)
	assert.Nil(t, res.Table)
	assert.NoFileExists(t, out)

	require.NotEmpty(t, rec.lines)
	last := rec.lines[len(rec.lines)-1]
	assert.Equal(t, "error", last.level)
	assert.Contains(t, last.msg, "Rot")
}

func TestTransform_OverwriteGuard(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proj-all-pos.csv", posInput)
	out := writeFile(t, dir, "pos_to_fab.csv", "keep me\n")

	tr, rec := newTransformer(t)
	res, err := tr.Transform(context.Background(), Request{Kind: POS, Input: in, Output: out})
	require.NoError(t, err)
	assert.Equal(t, StatusOutputExists, res.Status)
	assert.Equal(t, "keep me\n", readFile(t, out))
	assert.Contains(t, rec.messages(), out+" exists already, use --force to overwrite!")

	res, err = tr.Transform(context.Background(), Request{Kind: POS, Input: in, Output: out, Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, StatusWritten, res.Status)
	assert.Contains(t, readFile(t, out), "Designator,Mid X,Mid Y,Layer,Rotation\n")
}

func TestTransform_DryRun(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proj-all-pos.csv", posInput)
	out := filepath.Join(dir, "pos_to_fab.csv")

	tr, _ := newTransformer(t)
	res, err := tr.Transform(context.Background(), Request{Kind: POS, Input: in, Output: out, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, StatusDryRun, res.Status)
	require.NotNil(t, res.Table)
	assert.Equal(t, []string{"Designator", "Mid X", "Mid Y", "Layer", "Rotation"}, res.Table.Columns)
	assert.Len(t, res.Table.Rows, 3)
	assert.NoFileExists(t, out)
}

func TestTransform_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "proj-all-pos.csv", posInput)
	out := filepath.Join(dir, "pos_to_fab.csv")

	tr, _ := newTransformer(t)
	_, err := tr.Transform(context.Background(), Request{Kind: POS, Input: in, Output: out})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"proj-all-pos.csv", "pos_to_fab.csv"}, names)
}

func TestTransform_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr, _ := newTransformer(t)
	res, err := tr.Transform(ctx, Request{Kind: BOM, Input: "x.csv", Output: "y.csv"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusFailed, res.Status)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "written", StatusWritten.String())
	assert.Equal(t, "output-exists", StatusOutputExists.String())
	assert.Equal(t, "Status(42)", Status(42).String())
}
