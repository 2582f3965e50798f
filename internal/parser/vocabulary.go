package parser

import "strings"

// subjectEntry is one canonical subject with the folded aliases under which
// real editais list it.
type subjectEntry struct {
	// Canonical is the display name, accents preserved.
	Canonical string

	// Aliases are folded (lowercase, diacritic-free) forms searched in the
	// document. The first alias is the folded canonical name.
	Aliases []string
}

// vocabulary is the canonical subject list of the exam family. Order matters
// only for fallback stability; document order wins whenever subjects are
// found in the text.
var vocabulary = []subjectEntry{
	{"Língua Portuguesa", []string{"lingua portuguesa", "portugues"}},
	{"Matemática", []string{"matematica"}},
	{"Raciocínio Lógico", []string{"raciocinio logico", "raciocinio logico matematico"}},
	{"Noções de Informática", []string{"nocoes de informatica", "nocoes basicas de informatica", "informatica"}},
	{"Conhecimentos Gerais", []string{"conhecimentos gerais"}},
	{"Atualidades", []string{"atualidades"}},
	{"Legislação", []string{"legislacao"}},
	{"Direito Constitucional", []string{"direito constitucional"}},
	{"Direito Administrativo", []string{"direito administrativo"}},
	{"Direito Penal", []string{"direito penal"}},
	{"Conhecimentos Específicos", []string{"conhecimentos especificos"}},
	{"História", []string{"historia"}},
	{"Geografia", []string{"geografia"}},
	{"Ética no Serviço Público", []string{"etica no servico publico", "etica"}},
}

// fallbackSubjects is used when the weighting table yields fewer than 3
// subjects: the common core of the exam family.
var fallbackSubjects = []string{
	"Língua Portuguesa",
	"Matemática",
	"Raciocínio Lógico",
	"Noções de Informática",
	"Conhecimentos Gerais",
}

// nameEquivalences maps folded name variants onto canonical display names.
// Applied by the finalizer before merging.
var nameEquivalences = map[string]string{
	"portugues":                     "Língua Portuguesa",
	"lingua portuguesa":             "Língua Portuguesa",
	"matematica":                    "Matemática",
	"informatica":                   "Noções de Informática",
	"nocoes de informatica":         "Noções de Informática",
	"nocoes basicas de informatica": "Noções de Informática",
	"logica":                        "Raciocínio Lógico",
	"raciocinio logico":             "Raciocínio Lógico",
	"raciocinio logico matematico":  "Raciocínio Lógico",
	"etica":                         "Ética no Serviço Público",
	"etica no servico publico":      "Ética no Serviço Público",
}

// boilerplateTerms reject topic candidates that are really document
// furniture: edict headers, annex labels, institutional names, page marks.
// Terms are folded.
var boilerplateTerms = []string{
	"edital",
	"anexo",
	"quadro",
	"concurso publico",
	"processo seletivo",
	"prefeitura",
	"camara municipal",
	"ministerio",
	"secretaria municipal",
	"comissao organizadora",
	"retificacao",
	"cnpj",
	"www.",
	"http",
	"pagina",
	"cargo:",
	"vagas",
	"inscricao",
	"gabarito",
}

// subjectStopwords are connective words ignored when building a subject's
// token signature.
var subjectStopwords = map[string]bool{
	"nocoes": true,
	"para":   true,
	"como":   true,
}

// entryByCanonical finds a vocabulary entry by canonical name.
func entryByCanonical(name string) (subjectEntry, bool) {
	for _, e := range vocabulary {
		if e.Canonical == name {
			return e, true
		}
	}
	return subjectEntry{}, false
}

// contentTokens returns the folded tokens of the entry's canonical alias with
// at least 4 runes, minus stopwords. Used for token-signature matching.
func contentTokens(e subjectEntry) []string {
	var out []string
	for _, tok := range strings.Fields(e.Aliases[0]) {
		if len([]rune(tok)) < 4 || subjectStopwords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}
