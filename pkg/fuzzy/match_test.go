package fuzzy

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		language string
		want     string
	}{
		{"lowercase and trim", "  Hello World  ", "indonesian", "hello world"},
		{"strip punctuation", `Selamat, pagi! (semua)`, "indonesian", "selamat pagi semua"},
		{"collapse whitespace", "terima   kasih\tbanyak", "indonesian", "terima kasih banyak"},
		{"pinyin tone folding", "nǐ hǎo", "chinese", "ni hao"},
		{"umlaut family folds to v", "nǚ rén", "chinese", "nv ren"},
		{"tones kept for other languages", "nǐ hǎo", "indonesian", "nǐ hǎo"},
		{"hanzi untouched", "你好！", "chinese", "你好"},
		{"empty", "", "chinese", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in, tc.language)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := Normalize(got, tc.language); again != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestGradeExactMatch(t *testing.T) {
	res := Grade("你好", "你好", "chinese", DefaultThreshold)
	if !res.Correct || res.Similarity != 1 {
		t.Fatalf("expected exact match, got %+v", res)
	}
}

func TestGradeToneFolding(t *testing.T) {
	res := Grade("ni hao", "nǐ hǎo", "chinese", DefaultThreshold)
	if !res.Correct || res.Similarity != 1 {
		t.Fatalf("expected tone-folded match, got %+v", res)
	}
	if res.NormalizedExpected != "ni hao" {
		t.Fatalf("unexpected normalized expected: %q", res.NormalizedExpected)
	}
}

func TestGradeForwardContainment(t *testing.T) {
	res := Grade("the answer is hello", "hello", "indonesian", DefaultThreshold)
	if !res.Correct || res.Similarity != 0.95 {
		t.Fatalf("expected verbose transcript to match at 0.95, got %+v", res)
	}
}

func TestGradeForwardContainmentNeedsLength(t *testing.T) {
	// "hi" is contained but too short to count as containment.
	res := Grade("xyz hi", "hi", "indonesian", DefaultThreshold)
	if res.Correct {
		t.Fatalf("short expected answer should not match by containment: %+v", res)
	}
}

func TestGradeBackwardContainment(t *testing.T) {
	res := Grade("keluar", "keluarga", "indonesian", DefaultThreshold)
	if !res.Correct {
		t.Fatalf("expected partial transcript to match, got %+v", res)
	}
	if want := 6.0 / 8.0; res.Similarity != want {
		t.Fatalf("similarity = %v, want %v", res.Similarity, want)
	}
}

func TestGradeBackwardContainmentRatioTooSmall(t *testing.T) {
	res := Grade("mak", "makanan", "indonesian", DefaultThreshold)
	if res.Correct {
		t.Fatalf("transcript covering under 70%% should not match: %+v", res)
	}
}

func TestGradeThresholdBoundary(t *testing.T) {
	// Distance 2 over length 5: similarity exactly 0.6.
	res := Grade("abcde", "abxye", "indonesian", 0.6)
	if !res.Correct || res.Similarity != 0.6 {
		t.Fatalf("similarity 0.6 must pass a 0.6 threshold: %+v", res)
	}

	res = Grade("abcde", "abxye", "indonesian", 0.61)
	if res.Correct {
		t.Fatalf("similarity 0.6 must fail a 0.61 threshold: %+v", res)
	}

	// Distance 5 over length 12: similarity just below the cut-off.
	res = Grade("abcdefghijkl", "abcdefgvwxyz", "indonesian", 0.6)
	if res.Correct || res.Similarity >= 0.6 {
		t.Fatalf("expected sub-threshold similarity, got %+v", res)
	}
}

func TestGradeEmptyInputs(t *testing.T) {
	res := Grade("hello", "", "indonesian", DefaultThreshold)
	if res.Correct || res.Similarity != 0 {
		t.Fatalf("empty expected answer must grade incorrect: %+v", res)
	}

	res = Grade("", "hello", "indonesian", DefaultThreshold)
	if res.Correct || res.Similarity != 0 {
		t.Fatalf("empty transcript must grade incorrect: %+v", res)
	}

	res = Grade("", "", "indonesian", DefaultThreshold)
	if !res.Correct || res.Similarity != 1 {
		t.Fatalf("two empty strings are identical: %+v", res)
	}
}

func TestSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"a", "", 0},
		{"", "a", 0},
		{"kitten", "kitten", 1},
		{"kitten", "sitten", 1 - 1.0/6.0},
		{"你好", "你坏", 0.5},
	}
	for _, tc := range cases {
		if got := Similarity(tc.a, tc.b); got != tc.want {
			t.Fatalf("Similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
