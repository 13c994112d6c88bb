package aisle

import "strings"

// Store-aisle taxonomy. The generative categorizer and the keyword
// fallback both bucket into exactly these labels.
const (
	Hortifruti = "Hortifruti"
	Acougue    = "Açougue"
	Laticinios = "Laticínios"
	Padaria    = "Padaria"
	Mercearia  = "Mercearia"
	Bebidas    = "Bebidas"
	Limpeza    = "Limpeza"
	Higiene    = "Higiene"
	Outros     = "Outros"
)

// Taxonomy lists every aisle category in display order.
var Taxonomy = []string{
	Hortifruti, Acougue, Laticinios, Padaria, Mercearia,
	Bebidas, Limpeza, Higiene, Outros,
}

// Valid reports whether category is part of the taxonomy.
func Valid(category string) bool {
	for _, c := range Taxonomy {
		if c == category {
			return true
		}
	}
	return false
}

// Categorize returns the aisle category for the given item name.
// It performs case-insensitive matching: exact match first, then substring
// match. Falls back to "Outros" if no match is found. This is the offline
// fallback used when the generative categorizer is unavailable.
func Categorize(itemName string) string {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return Outros
	}

	// Phase 1: exact match
	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	// Phase 2: substring match (ordered longer/more-specific first)
	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return Outros
}

var exactMatch = map[string]string{
	// Hortifruti
	"banana":    Hortifruti,
	"bananas":   Hortifruti,
	"maçã":      Hortifruti,
	"maçãs":     Hortifruti,
	"laranja":   Hortifruti,
	"laranjas":  Hortifruti,
	"limão":     Hortifruti,
	"limões":    Hortifruti,
	"abacate":   Hortifruti,
	"tomate":    Hortifruti,
	"tomates":   Hortifruti,
	"batata":    Hortifruti,
	"batatas":   Hortifruti,
	"cebola":    Hortifruti,
	"cebolas":   Hortifruti,
	"alho":      Hortifruti,
	"alface":    Hortifruti,
	"couve":     Hortifruti,
	"brócolis":  Hortifruti,
	"cenoura":   Hortifruti,
	"cenouras":  Hortifruti,
	"pepino":    Hortifruti,
	"abobrinha": Hortifruti,
	"mamão":     Hortifruti,
	"manga":     Hortifruti,
	"abacaxi":   Hortifruti,
	"melancia":  Hortifruti,
	"uva":       Hortifruti,
	"uvas":      Hortifruti,
	"morango":   Hortifruti,
	"morangos":  Hortifruti,
	"cheiro verde": Hortifruti,
	"coentro":   Hortifruti,
	"salsinha":  Hortifruti,
	"gengibre":  Hortifruti,
	"pimentão":  Hortifruti,

	// Açougue
	"frango":        Acougue,
	"carne":         Acougue,
	"carne moída":   Acougue,
	"picanha":       Acougue,
	"alcatra":       Acougue,
	"costela":       Acougue,
	"linguiça":      Acougue,
	"bacon":         Acougue,
	"peixe":         Acougue,
	"salmão":        Acougue,
	"tilápia":       Acougue,
	"camarão":       Acougue,
	"porco":         Acougue,
	"lombo":         Acougue,
	"peito de frango": Acougue,
	"coxa de frango":  Acougue,

	// Laticínios
	"leite":            Laticinios,
	"ovos":             Laticinios,
	"manteiga":         Laticinios,
	"queijo":           Laticinios,
	"iogurte":          Laticinios,
	"requeijão":        Laticinios,
	"creme de leite":   Laticinios,
	"leite condensado": Laticinios,
	"mussarela":        Laticinios,
	"queijo minas":     Laticinios,

	// Padaria
	"pão":             Padaria,
	"pães":            Padaria,
	"pão de forma":    Padaria,
	"pão francês":     Padaria,
	"pão de queijo":   Padaria,
	"bolo":            Padaria,
	"torrada":         Padaria,
	"bisnaguinha":     Padaria,

	// Mercearia
	"arroz":           Mercearia,
	"feijão":          Mercearia,
	"macarrão":        Mercearia,
	"farinha":         Mercearia,
	"açúcar":          Mercearia,
	"sal":             Mercearia,
	"óleo":            Mercearia,
	"azeite":          Mercearia,
	"vinagre":         Mercearia,
	"molho de tomate": Mercearia,
	"ketchup":         Mercearia,
	"maionese":        Mercearia,
	"mostarda":        Mercearia,
	"mel":             Mercearia,
	"aveia":           Mercearia,
	"milho":           Mercearia,
	"ervilha":         Mercearia,
	"atum":            Mercearia,
	"sardinha":        Mercearia,
	"café":            Mercearia,
	"achocolatado":    Mercearia,
	"biscoito":        Mercearia,
	"bolacha":         Mercearia,
	"granola":         Mercearia,

	// Bebidas
	"água":              Bebidas,
	"suco":              Bebidas,
	"refrigerante":      Bebidas,
	"cerveja":           Bebidas,
	"vinho":             Bebidas,
	"água com gás":      Bebidas,
	"água de coco":      Bebidas,
	"chá":               Bebidas,
	"energético":        Bebidas,

	// Limpeza
	"detergente":          Limpeza,
	"sabão em pó":         Limpeza,
	"amaciante":           Limpeza,
	"água sanitária":      Limpeza,
	"desinfetante":        Limpeza,
	"esponja":             Limpeza,
	"saco de lixo":        Limpeza,
	"papel toalha":        Limpeza,
	"álcool":              Limpeza,
	"limpa vidros":        Limpeza,

	// Higiene
	"papel higiênico": Higiene,
	"sabonete":        Higiene,
	"shampoo":         Higiene,
	"condicionador":   Higiene,
	"pasta de dente":  Higiene,
	"creme dental":    Higiene,
	"escova de dente": Higiene,
	"desodorante":     Higiene,
	"absorvente":      Higiene,
	"fio dental":      Higiene,
	"fralda":          Higiene,
	"protetor solar":  Higiene,
}

type substringEntry struct {
	keyword  string
	category string
}

// Ordered with longer/more-specific keywords first for deterministic priority.
var substringMatches = []substringEntry{
	// Açougue, longer phrases first
	{"peito de frango", Acougue},
	{"coxa de frango", Acougue},
	{"carne moída", Acougue},
	{"filé de", Acougue},
	{"frango", Acougue},
	{"linguiça", Acougue},
	{"costela", Acougue},
	{"picanha", Acougue},
	{"camarão", Acougue},
	{"peixe", Acougue},
	{"carne", Acougue},

	// Laticínios
	{"leite condensado", Laticinios},
	{"creme de leite", Laticinios},
	{"requeijão", Laticinios},
	{"iogurte", Laticinios},
	{"queijo", Laticinios},
	{"manteiga", Laticinios},
	{"margarina", Laticinios},
	{"leite", Laticinios},
	{"ovo", Laticinios},

	// Hortifruti
	{"cheiro verde", Hortifruti},
	{"pimentão", Hortifruti},
	{"tomate", Hortifruti},
	{"batata", Hortifruti},
	{"cebola", Hortifruti},
	{"alface", Hortifruti},
	{"banana", Hortifruti},
	{"maçã", Hortifruti},
	{"limão", Hortifruti},
	{"laranja", Hortifruti},
	{"fruta", Hortifruti},
	{"verdura", Hortifruti},
	{"legume", Hortifruti},

	// Padaria
	{"pão de queijo", Padaria},
	{"pão", Padaria},
	{"bolo", Padaria},
	{"torrada", Padaria},
	{"croissant", Padaria},

	// Mercearia
	{"molho de tomate", Mercearia},
	{"azeite", Mercearia},
	{"macarrão", Mercearia},
	{"farinha", Mercearia},
	{"açúcar", Mercearia},
	{"arroz", Mercearia},
	{"feijão", Mercearia},
	{"biscoito", Mercearia},
	{"bolacha", Mercearia},
	{"cereal", Mercearia},
	{"enlatado", Mercearia},
	{"tempero", Mercearia},
	{"molho", Mercearia},
	{"café", Mercearia},
	{"óleo", Mercearia},

	// Bebidas
	{"água com gás", Bebidas},
	{"água de coco", Bebidas},
	{"refrigerante", Bebidas},
	{"cerveja", Bebidas},
	{"vinho", Bebidas},
	{"suco", Bebidas},
	{"chá", Bebidas},
	{"água", Bebidas},
	{"bebida", Bebidas},

	// Limpeza
	{"água sanitária", Limpeza},
	{"sabão em pó", Limpeza},
	{"saco de lixo", Limpeza},
	{"papel toalha", Limpeza},
	{"detergente", Limpeza},
	{"desinfetante", Limpeza},
	{"amaciante", Limpeza},
	{"esponja", Limpeza},
	{"limpeza", Limpeza},
	{"limpador", Limpeza},

	// Higiene
	{"papel higiênico", Higiene},
	{"pasta de dente", Higiene},
	{"creme dental", Higiene},
	{"escova de dente", Higiene},
	{"sabonete", Higiene},
	{"shampoo", Higiene},
	{"condicionador", Higiene},
	{"desodorante", Higiene},
	{"absorvente", Higiene},
	{"fralda", Higiene},
}
