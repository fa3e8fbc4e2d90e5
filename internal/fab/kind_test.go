package fab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rename keys must all be selected columns and target names must not collide.
func TestProfiles_RenamesMatchColumns(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			p := kind.Profile()
			require.NotEmpty(t, p.Columns)

			for src := range p.Renames {
				assert.Contains(t, p.Columns, src, "rename key %q is not a selected column", src)
			}

			seen := make(map[string]bool)
			for _, name := range p.OutputColumns() {
				assert.False(t, seen[name], "duplicate output column %q", name)
				seen[name] = true
			}
		})
	}
}

func TestProfile_OutputColumns(t *testing.T) {
	assert.Equal(t, []string{"Designator", "Comment", "Footprint"}, BOM.Profile().OutputColumns())
	assert.Equal(t, []string{"Designator", "Mid X", "Mid Y", "Layer", "Rotation"}, POS.Profile().OutputColumns())
}

func TestProfile_Delimiters(t *testing.T) {
	assert.Equal(t, ';', BOM.Profile().Delimiter)
	assert.Equal(t, ',', POS.Profile().Delimiter)
}

func TestProfile_DefaultFilename(t *testing.T) {
	assert.Equal(t, "widget.csv", BOM.Profile().DefaultFilename("widget"))
	assert.Equal(t, "widget-all-pos.csv", POS.Profile().DefaultFilename("widget"))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "bom", want: BOM},
		{in: "BOM", want: BOM},
		{in: " pos ", want: POS},
		{in: "position", want: POS},
		{in: "gerber", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind_Strings(t *testing.T) {
	assert.Equal(t, "BOM", BOM.String())
	assert.Equal(t, "pos", POS.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())

	text, err := BOM.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "bom", string(text))
}

func TestKind_UnmarshalText(t *testing.T) {
	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("pos")))
	assert.Equal(t, POS, k)
	assert.Error(t, k.UnmarshalText([]byte("drill")))
}
