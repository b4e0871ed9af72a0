package htmltext

import "testing"

func TestLooksLikeHTML(t *testing.T) {
	t.Parallel()

	if LooksLikeHTML("just a plain paragraph about nothing") {
		t.Fatalf("plain text misdetected as html")
	}
	if LooksLikeHTML("x < y and y > z") {
		t.Fatalf("inequality misdetected as html")
	}
	if !LooksLikeHTML(`<div class="post">hello</div>`) {
		t.Fatalf("div markup not detected")
	}
	if !LooksLikeHTML("<HTML><BODY>shouting</BODY></HTML>") {
		t.Fatalf("uppercase markup not detected")
	}
}

func TestExtractTextDropsMarkupAndScripts(t *testing.T) {
	t.Parallel()

	raw := `<html><head><style>p{color:red}</style></head>
	<body>
	<p>First   paragraph.</p>
	<script>alert(1)</script>
	<p>Second paragraph.</p>
	</body></html>`

	got := ExtractText(raw)
	want := "First paragraph. Second paragraph."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
