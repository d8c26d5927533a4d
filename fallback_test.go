package imghref_test

import (
	"testing"

	"github.com/arloliu/imghref"
	"github.com/arloliu/imghref/svgtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver is an instrumented resolver for composition tests.
type stubResolver struct {
	claims       bool
	result       *svgtree.ImageKind
	claimCalls   int
	resolveCalls int
	onResolve    func()
}

func (s *stubResolver) Claims(string) bool {
	s.claimCalls++
	return s.claims
}

func (s *stubResolver) Resolve(string, *svgtree.Options) *svgtree.ImageKind {
	s.resolveCalls++
	if s.onResolve != nil {
		s.onResolve()
	}
	return s.result
}

func pngKind(t *testing.T, data string) *svgtree.ImageKind {
	t.Helper()
	kind := svgtree.NewRasterImage(svgtree.FormatPNG, []byte(data))
	require.NotNil(t, kind)
	return kind
}

func TestFallbackResolver_PrimarySuccessSkipsFallback(t *testing.T) {
	want := pngKind(t, "primary")
	primary := &stubResolver{claims: true, result: want}
	fallback := &stubResolver{claims: true, onResolve: func() {
		t.Error("fallback resolved despite primary success")
	}}

	r := imghref.NewFallbackResolver(primary, fallback)

	got := r.Resolve("href", nil)
	assert.Same(t, want, got)
	assert.Equal(t, 1, primary.resolveCalls)
	assert.Equal(t, 0, fallback.resolveCalls)
}

func TestFallbackResolver_PrimaryFailureUsesFallback(t *testing.T) {
	want := pngKind(t, "fallback")
	primary := &stubResolver{claims: true, result: nil}
	fallback := &stubResolver{claims: true, result: want}

	r := imghref.NewFallbackResolver(primary, fallback)

	got := r.Resolve("href", nil)
	assert.Same(t, want, got)
	assert.Equal(t, 1, primary.resolveCalls)
	assert.Equal(t, 1, fallback.resolveCalls)
}

func TestFallbackResolver_PrimaryDeclineUsesFallback(t *testing.T) {
	want := pngKind(t, "fallback")
	primary := &stubResolver{claims: false}
	fallback := &stubResolver{claims: true, result: want}

	r := imghref.NewFallbackResolver(primary, fallback)

	got := r.Resolve("href", nil)
	assert.Same(t, want, got)
	assert.Equal(t, 0, primary.resolveCalls)
}

func TestFallbackResolver_NeitherClaims(t *testing.T) {
	primary := &stubResolver{claims: false}
	fallback := &stubResolver{claims: false}

	r := imghref.NewFallbackResolver(primary, fallback)

	assert.False(t, r.Claims("href"))
	assert.Nil(t, r.Resolve("href", nil))
	assert.Equal(t, 0, primary.resolveCalls)
	assert.Equal(t, 0, fallback.resolveCalls)
}

func TestFallbackResolver_ClaimsShortCircuits(t *testing.T) {
	primary := &stubResolver{claims: true}
	fallback := &stubResolver{claims: true}

	r := imghref.NewFallbackResolver(primary, fallback)

	assert.True(t, r.Claims("href"))
	assert.Equal(t, 1, primary.claimCalls)
	assert.Equal(t, 0, fallback.claimCalls)
}

func TestChain_SingleResolver(t *testing.T) {
	only := &stubResolver{claims: true}
	assert.Equal(t, imghref.Resolver(only), imghref.Chain(only))
}

func TestChain_RightAssociative(t *testing.T) {
	a := &stubResolver{}
	b := &stubResolver{}
	c := &stubResolver{}

	chain := imghref.Chain(a, b, c)

	outer, ok := chain.(*imghref.FallbackResolver)
	require.True(t, ok)
	assert.Equal(t, imghref.Resolver(a), outer.Primary)

	inner, ok := outer.Fallback.(*imghref.FallbackResolver)
	require.True(t, ok)
	assert.Equal(t, imghref.Resolver(b), inner.Primary)
	assert.Equal(t, imghref.Resolver(c), inner.Fallback)
}

func TestChain_OrderOfAttempts(t *testing.T) {
	t.Run("b only tried after a fails", func(t *testing.T) {
		want := pngKind(t, "b")
		a := &stubResolver{claims: true, result: nil}
		b := &stubResolver{claims: true, result: want}
		c := &stubResolver{claims: true, onResolve: func() {
			t.Error("c resolved despite b success")
		}}

		got := imghref.Chain(a, b, c).Resolve("href", nil)
		assert.Same(t, want, got)
		assert.Equal(t, 1, a.resolveCalls)
		assert.Equal(t, 1, b.resolveCalls)
		assert.Equal(t, 0, c.resolveCalls)
	})

	t.Run("c only tried after a and b fail", func(t *testing.T) {
		want := pngKind(t, "c")
		a := &stubResolver{claims: false}
		b := &stubResolver{claims: true, result: nil}
		c := &stubResolver{claims: true, result: want}

		got := imghref.Chain(a, b, c).Resolve("href", nil)
		assert.Same(t, want, got)
		assert.Equal(t, 0, a.resolveCalls)
		assert.Equal(t, 1, b.resolveCalls)
		assert.Equal(t, 1, c.resolveCalls)
	})

	t.Run("first success wins", func(t *testing.T) {
		want := pngKind(t, "a")
		a := &stubResolver{claims: true, result: want}
		b := &stubResolver{claims: true, onResolve: func() {
			t.Error("b resolved despite a success")
		}}
		c := &stubResolver{claims: true, onResolve: func() {
			t.Error("c resolved despite a success")
		}}

		got := imghref.Chain(a, b, c).Resolve("href", nil)
		assert.Same(t, want, got)
	})
}

func TestWithFallback(t *testing.T) {
	primary := &stubResolver{claims: true}
	fallback := &stubResolver{claims: true}

	r := imghref.WithFallback(primary, fallback)
	assert.Equal(t, imghref.Resolver(primary), r.Primary)
	assert.Equal(t, imghref.Resolver(fallback), r.Fallback)
}

func TestResolverFunc_ShortCircuitsOnDecline(t *testing.T) {
	s := &stubResolver{claims: false, onResolve: func() {
		t.Error("resolve invoked despite decline")
	}}

	fn := imghref.ResolverFunc(s)
	assert.Nil(t, fn("href", nil))
	assert.Equal(t, 0, s.resolveCalls)
}

func TestInstall(t *testing.T) {
	want := pngKind(t, "x")
	s := &stubResolver{claims: true, result: want}

	opts := &svgtree.Options{}
	imghref.Install(s, opts)

	require.NotNil(t, opts.ResolveString)
	assert.Same(t, want, opts.ResolveString("href", opts))
}
