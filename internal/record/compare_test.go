package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchema_Compare(t *testing.T) {
	a := baseUser()

	t.Run("identical", func(t *testing.T) {
		b := *a
		require.NoError(t, userSchema.Compare(a, &b))
		require.True(t, userSchema.Equal(a, &b))
	})

	t.Run("float within tolerance", func(t *testing.T) {
		b := *a
		b.Height += 0.0001
		require.True(t, userSchema.Equal(a, &b))
	})

	t.Run("float beyond tolerance", func(t *testing.T) {
		b := *a
		b.Height = 6.46
		err := userSchema.Compare(a, &b)
		var me *MismatchError
		require.ErrorAs(t, err, &me)
		require.Equal(t, "User", me.Type)
		require.Equal(t, []string{"height"}, me.Fields())
		require.Equal(t, "6.45", me.Mismatches[0].Left)
		require.Equal(t, "6.46", me.Mismatches[0].Right)

		require.True(t, userSchema.WithFloatTolerance(0.1).Equal(a, &b))
	})

	t.Run("any non-float change", func(t *testing.T) {
		cases := map[string]func(u *user){
			"name":                 func(u *user) { u.Name = "parker" },
			"dogs_count":           func(u *user) { u.DogsCount++ },
			"is_poros":             func(u *user) { u.IsPoros = true },
			"str_opt":              func(u *user) { u.StrOpt = ptr("") },
			"enum_field":           func(u *user) { u.Role = roleB },
			"birthday":             func(u *user) { u.Birthday = u.Birthday.Add(1) },
			"spent_eating_hotdogs": func(u *user) { u.SpentEatingHotdogs += time.Second },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				b := *a
				mutate(&b)
				err := userSchema.Compare(a, &b)
				var me *MismatchError
				require.ErrorAs(t, err, &me)
				require.Equal(t, []string{name}, me.Fields())
			})
		}
	})

	t.Run("reports every field", func(t *testing.T) {
		b := *a
		b.Name = "x"
		b.Role = roleB
		err := userSchema.Compare(a, &b)
		require.EqualError(t, err, `record: User values differ: name: "peter" != "x", enum_field: "a" != "b"`)
	})

	t.Run("sub-second duration is invisible", func(t *testing.T) {
		b := *a
		b.SpentEatingHotdogs += 500 * time.Millisecond
		require.True(t, userSchema.Equal(a, &b))
	})
}

func TestFloatsClose(t *testing.T) {
	require.True(t, floatsClose("NULL", "NULL", 0.001))
	require.False(t, floatsClose("NULL", "1.0", 0.001))
	require.True(t, floatsClose("1.0", "1.0005", 0.001))
	require.False(t, floatsClose("1.0", "1.01", 0.001))
	require.True(t, floatsClose("+Inf", "+Inf", 0.001))
}
