package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold_StripsDiacriticsAndLowercases(t *testing.T) {
	f := Fold("CONTEÚDO Programático")
	assert.Equal(t, "conteudo programatico", f.Text)
}

func TestFold_PreservesLineStructure(t *testing.T) {
	f := Fold("LÍNGUA\nPORTUGUESA")
	assert.Equal(t, "lingua\nportuguesa", f.Text)
}

func TestFold_SourceMapping(t *testing.T) {
	src := "Matemática"
	f := Fold(src)
	require.Equal(t, "matematica", f.Text)

	// "matica" starts at folded offset 4; the source rune there is 'm' too,
	// but the accented 'á' sits earlier in the source.
	i := 4
	assert.Equal(t, 'm', rune(src[f.Source(i)]))

	// End-of-text sentinel.
	assert.Equal(t, len(src), f.Source(len(f.Text)))
	assert.Equal(t, len(src), f.Source(len(f.Text)+10))
	assert.Equal(t, 0, f.Source(-1))
}

func TestFold_SourceMappingRoundTrip(t *testing.T) {
	src := "ÁGUA é vida"
	f := Fold(src)
	require.Equal(t, "agua e vida", f.Text)

	// Slicing the source via the map must cover the same words.
	start := f.Source(5) // 'e'
	end := f.Source(6)
	assert.Equal(t, "é", src[start:end])
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "conteudo programatico", Normalize("  Conteúdo\n\n  Programático  "))
	assert.Equal(t, "", Normalize("   \n\t  "))
}

func TestFindAll(t *testing.T) {
	hay := Fold("Anexo II ... anexo ii ... ANEXO III").Text

	occ := FindAll(hay, "Anexo II")
	require.Len(t, occ, 3) // "anexo iii" contains "anexo ii" as a prefix
	assert.Equal(t, 0, occ[0])
	assert.Equal(t, 13, occ[1])
}

func TestFindAll_NonOverlapping(t *testing.T) {
	occ := FindAll("aaaa", "aa")
	assert.Equal(t, []int{0, 2}, occ)
}

func TestFindAll_Empty(t *testing.T) {
	assert.Nil(t, FindAll("abc", ""))
	assert.Nil(t, FindAll("", "abc"))
}

func TestContains(t *testing.T) {
	hay := Fold("Conteúdo Programático").Text
	assert.True(t, Contains(hay, "CONTEÚDO"))
	assert.True(t, Contains(hay, "programatico"))
	assert.False(t, Contains(hay, "disciplina"))
}

func TestWindow(t *testing.T) {
	f := Fold("abcdef")
	assert.Equal(t, "cde", f.Window(2, 3))
	assert.Equal(t, "ef", f.Window(4, 100))
	assert.Equal(t, "", f.Window(10, 5))
	assert.Equal(t, "ab", f.Window(-1, 2))
}
