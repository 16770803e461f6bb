package convert

import "testing"

func TestSanitizeName_SpacesToUnderscores(t *testing.T) {
	got := SanitizeName("Come Together")
	want := "Come_Together"

	if got != want {
		t.Errorf("SanitizeName() = %q, want %q", got, want)
	}
}

func TestSanitizeName_SlashReplaced(t *testing.T) {
	// AC/DC should become AC_DC (slash is illegal in filenames)
	got := SanitizeName("AC/DC - Hells Bells")
	want := "AC_DC_-_Hells_Bells"

	if got != want {
		t.Errorf("SanitizeName() = %q, want %q", got, want)
	}
}

func TestSanitizeName_RemovesQuotes(t *testing.T) {
	got := SanitizeName(`Won't Get "Fooled" Again`)
	want := "Wont_Get_Fooled_Again"

	if got != want {
		t.Errorf("SanitizeName() = %q, want %q", got, want)
	}
}

func TestSanitizeName_ShellMetacharacters(t *testing.T) {
	got := SanitizeName("What?! (Club Mix) [2024]")
	want := "What_Club_Mix_2024"

	if got != want {
		t.Errorf("SanitizeName() = %q, want %q", got, want)
	}
}

func TestSanitizeName_NormalizesNonASCII(t *testing.T) {
	got := SanitizeName("Beyoncé & Motörhead")
	want := "Beyonce_Motorhead"

	if got != want {
		t.Errorf("SanitizeName() = %q, want %q", got, want)
	}
}

func TestSanitizeName_CollapsesUnderscores(t *testing.T) {
	got := SanitizeName("  A   B  ")
	want := "A_B"

	if got != want {
		t.Errorf("SanitizeName() = %q, want %q", got, want)
	}
}
