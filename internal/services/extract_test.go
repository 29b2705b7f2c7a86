package services

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "fenced json block",
			in:   "```json\n{\"overview\": \"ok\"}\n```",
			want: `{"overview": "ok"}`,
		},
		{
			name: "fence without language tag",
			in:   "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "prose around the object",
			in:   "Here is your review:\n{\"overview\": \"ok\"}\nHope that helps!",
			want: `{"overview": "ok"}`,
		},
		{
			name: "object spanning newlines",
			in:   "{\n  \"overview\": \"ok\",\n  \"match_level\": \"High\"\n}",
			want: "{\n  \"overview\": \"ok\",\n  \"match_level\": \"High\"\n}",
		},
		{
			name: "no object passes through stripped",
			in:   "  sorry, I cannot help with that  ",
			want: "sorry, I cannot help with that",
		},
		{
			name: "fenced but no object",
			in:   "```json\nnot json at all\n```",
			want: "not json at all",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.in); got != tc.want {
				t.Fatalf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
