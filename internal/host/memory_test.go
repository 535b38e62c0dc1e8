package host

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryClassListIsIdempotent(t *testing.T) {
	t.Parallel()

	d := NewMemory("Hello")
	d.AddBodyClass("x")
	d.AddBodyClass("x")
	d.AddBodyClass("y")
	require.Equal(t, []string{"x", "y"}, d.Classes())
	require.Equal(t, "x y", d.ClassName())

	d.RemoveBodyClass("absent")
	require.Equal(t, []string{"x", "y"}, d.Classes())

	d.RemoveBodyClass("x")
	require.False(t, d.HasClass("x"))
	require.True(t, d.HasClass("y"))
}

func TestMemoryClickListeners(t *testing.T) {
	t.Parallel()

	d := NewMemory("")
	var order []int
	a := d.AddClickListener(func() { order = append(order, 1) })
	d.AddClickListener(func() { order = append(order, 2) })
	require.Equal(t, 2, d.Listeners())

	d.Click()
	require.Equal(t, []int{1, 2}, order)

	d.RemoveClickListener(a)
	d.RemoveClickListener(a)
	d.RemoveClickListener(999)
	require.Equal(t, 1, d.Listeners())

	order = nil
	d.Click()
	require.Equal(t, []int{2}, order)
}

func TestMemoryTitle(t *testing.T) {
	t.Parallel()

	d := NewMemory("Hello")
	require.Equal(t, "Hello", d.Title())
	d.SetTitle("World")
	require.Equal(t, "World", d.Title())
}
