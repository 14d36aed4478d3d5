package intent

import "testing"

func TestIsGibberish(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"repeated characters", "aaaaaaaaa", true},
		{"keyboard row", "asdfgh", true},
		{"keyboard row reversed", "poiuyt", true},
		{"consonant mash", "xkcdqwzrtp", true},
		{"low variety", "ababab", true},
		{"domain term", "catanduanes", false},
		{"normal question", "where can i surf", false},
		{"allowlisted short token", "hi", false},
		{"allowlisted thanks", "tnx", false},
		{"filipino greeting", "kumusta", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGibberish(tt.text, 5); got != tt.want {
				t.Errorf("isGibberish(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLongestConsonantRun(t *testing.T) {
	if got := longestConsonantRun("strengths"); got != 5 {
		t.Errorf("longestConsonantRun(strengths) = %d, want 5", got)
	}
	if got := longestConsonantRun("aloha"); got != 1 {
		t.Errorf("longestConsonantRun(aloha) = %d, want 1", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  WHERE are the Beaches?  "); got != "where are the beaches?" {
		t.Errorf("Normalize = %q", got)
	}
	if got := Normalize("café"); got != "cafe" {
		t.Errorf("Normalize(café) = %q, want cafe", got)
	}
}
