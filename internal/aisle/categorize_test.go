package aisle

import "testing"

func TestCategorizeExactMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"leite", Laticinios},
		{"frango", Acougue},
		{"pão", Padaria},
		{"arroz", Mercearia},
		{"banana", Hortifruti},
		{"cerveja", Bebidas},
		{"detergente", Limpeza},
		{"shampoo", Higiene},
	}
	for _, tt := range tests {
		got := Categorize(tt.input)
		if got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeSubstringMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"peito de frango congelado", Acougue},
		{"filé de tilápia", Acougue},
		{"leite condensado Moça", Laticinios},
		{"pão de forma integral", Padaria},
		{"molho de tomate tradicional", Mercearia},
		{"água com gás 1,5L", Bebidas},
		{"sabão em pó 2kg", Limpeza},
		{"papel higiênico folha dupla", Higiene},
		{"tomate italiano", Hortifruti},
	}
	for _, tt := range tests {
		got := Categorize(tt.input)
		if got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	if got := Categorize("LEITE"); got != Laticinios {
		t.Errorf("Categorize(LEITE) = %q, want %q", got, Laticinios)
	}
	if got := Categorize("  Frango  "); got != Acougue {
		t.Errorf("Categorize with whitespace = %q, want %q", got, Acougue)
	}
}

func TestCategorizeUnknownFallsBack(t *testing.T) {
	for _, input := range []string{"", "xyzzy", "lembrancinha de festa"} {
		if got := Categorize(input); got != Outros {
			t.Errorf("Categorize(%q) = %q, want %q", input, got, Outros)
		}
	}
}

func TestValid(t *testing.T) {
	for _, c := range Taxonomy {
		if !Valid(c) {
			t.Errorf("Valid(%q) = false, want true", c)
		}
	}
	if Valid("Eletrônicos") {
		t.Error("Valid(Eletrônicos) = true, want false")
	}
}
