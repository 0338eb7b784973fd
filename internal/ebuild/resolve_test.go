package ebuild

import "testing"

func TestSelfReference(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		lookup   string
		expected string
	}{
		{
			name:     "braced accumulation",
			content:  "A=x\nA=\"${A}y\"",
			lookup:   "a",
			expected: "xy",
		},
		{
			name:     "bare accumulation",
			content:  "USE=flag1\nUSE=\"$USE flag2\"",
			lookup:   "use",
			expected: "flag1 flag2",
		},
		{
			name:     "lowercase spelling",
			content:  "myvar=x\nmyvar=\"${myvar} y\"",
			lookup:   "myvar",
			expected: "x y",
		},
		{
			name:     "no prior value stays literal",
			content:  "A=\"${A}y\"",
			lookup:   "a",
			expected: "${A}y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Parse(tt.content)
			if got := data.Lookup(tt.lookup); got != tt.expected {
				t.Errorf("Lookup(%q) = %q, want %q", tt.lookup, got, tt.expected)
			}
		})
	}
}

func TestCrossReference(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		lookup   string
		expected string
	}{
		{
			name:     "braced reference",
			content:  "RDEPEND=\"dev-libs/libxml2\"\nDEPEND=\"${RDEPEND}\"",
			lookup:   "depend",
			expected: "dev-libs/libxml2",
		},
		{
			name:     "bare reference",
			content:  "MY_PN=nginx\nMY_URI=\"https://nginx.org/download/$MY_PN\"",
			lookup:   "my_uri",
			expected: "https://nginx.org/download/nginx",
		},
		{
			name:     "forward reference resolves after scan",
			content:  "DEPEND=\"${RDEPEND}\"\nRDEPEND=\"dev-libs/libxml2\"",
			lookup:   "depend",
			expected: "dev-libs/libxml2",
		},
		{
			name:     "two-level chain",
			content:  "C=leaf\nB=\"${C}\"\nA=\"${B}\"",
			lookup:   "a",
			expected: "leaf",
		},
		{
			name:     "undefined reference stays literal",
			content:  "DEPEND=\"${NOT_DEFINED}\"",
			lookup:   "depend",
			expected: "${NOT_DEFINED}",
		},
		{
			name:     "parameter expansion stays literal",
			content:  "SLOT=\"${PV%%_*}\"",
			lookup:   "slot",
			expected: "${PV%%_*}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Parse(tt.content)
			if got := data.Lookup(tt.lookup); got != tt.expected {
				t.Errorf("Lookup(%q) = %q, want %q", tt.lookup, got, tt.expected)
			}
		})
	}
}

func TestResolvePasses(t *testing.T) {
	content := "C=leaf\nB=\"${C}\"\nA=\"${B}\""

	t.Run("zero passes leaves references literal", func(t *testing.T) {
		data := ParseOpts(content, 0)
		if got := data.Lookup("a"); got != "${B}" {
			t.Errorf("Lookup(a) = %q, want %q", got, "${B}")
		}
		if got := data.Lookup("b"); got != "${C}" {
			t.Errorf("Lookup(b) = %q, want %q", got, "${C}")
		}
	})

	t.Run("default passes resolve the chain", func(t *testing.T) {
		data := ParseOpts(content, DefaultResolvePasses)
		if got := data.Lookup("a"); got != "leaf" {
			t.Errorf("Lookup(a) = %q, want leaf", got)
		}
	})

	t.Run("extra passes are harmless once stable", func(t *testing.T) {
		data := ParseOpts(content, 10)
		if got := data.Lookup("a"); got != "leaf" {
			t.Errorf("Lookup(a) = %q, want leaf", got)
		}
	})
}

func TestResolvePrefixNamesDeterministic(t *testing.T) {
	// AB is a prefix-overlapping sibling of A: a bare $AB reference
	// must always be claimed by AB, never mangled into A's value plus
	// a stray B, no matter the store's internal ordering.
	content := "A=x\nAB=y\nC=\"$AB\""
	for i := 0; i < 200; i++ {
		data := Parse(content)
		if got := data.Lookup("c"); got != "y" {
			t.Fatalf("Lookup(c) = %q on iteration %d, want y", got, i)
		}
	}
}

func TestResolveLongestNameWins(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		lookup   string
		expected string
	}{
		{
			name:     "bare reference to the longer name",
			content:  "PN=nginx\nPNV=nginx-1.29.3\nSRC=\"$PNV.tar.gz\"",
			lookup:   "src",
			expected: "nginx-1.29.3.tar.gz",
		},
		{
			name:     "bare reference to the shorter name",
			content:  "PN=nginx\nPNV=nginx-1.29.3\nSRC=\"$PN.tar.gz\"",
			lookup:   "src",
			expected: "nginx.tar.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Parse(tt.content)
			if got := data.Lookup(tt.lookup); got != tt.expected {
				t.Errorf("Lookup(%q) = %q, want %q", tt.lookup, got, tt.expected)
			}
		})
	}
}

func TestResolveCycleStaysLiteral(t *testing.T) {
	// A and B reference each other; substitution swaps the references
	// around but must terminate and leave some literal text behind.
	data := Parse("A=\"${B}\"\nB=\"${A}\"")
	a := data.Lookup("a")
	b := data.Lookup("b")
	if a == "" || b == "" {
		t.Errorf("cycle produced empty values: a=%q b=%q", a, b)
	}
}
