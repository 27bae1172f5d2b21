package damage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"car-damage-bot/internal/domain/entity"
)

func TestNormalizePart(t *testing.T) {
	cases := []struct {
		raw  string
		want entity.Part
	}{
		{"Front-Bumper-Dent", entity.PartBumper},
		{"REAR BUMPER", entity.PartBumper},
		{"door-scratch", entity.PartDoor},
		{"Bonnet Dent", entity.PartHood},
		{"hood", entity.PartHood},
		{"Fender", entity.PartFender},
		{"Headlight-Damage", entity.PartHeadlight},
		{"head lamp light", entity.PartHeadlight},
		{"Tail-Light", entity.PartTaillight},
		{"taillight broken", entity.PartTaillight},
		{"Windscreen crack", entity.PartWindshield},
		{"windshield", entity.PartWindshield},
		{"Side Mirror", entity.PartMirror},
		{"Grill", entity.PartGrille},
		{"front grille", entity.PartGrille},
		{"quarter-panel-dent", entity.PartOther},
		{"", entity.PartOther},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizePart(tc.raw))
		})
	}
}

func TestNormalizePart_PriorityOrder(t *testing.T) {
	// бампер проверяется раньше двери
	require.Equal(t, entity.PartBumper, NormalizePart("door-bumper"))
	// "head" без "light" не даёт фару
	require.Equal(t, entity.PartOther, NormalizePart("headrest"))
	// "tail" + "light" без "head" это задний фонарь
	require.Equal(t, entity.PartTaillight, NormalizePart("rear tail light"))
	// обе пары подстрок: правило фары идёт раньше
	require.Equal(t, entity.PartHeadlight, NormalizePart("headlight and tail"))
}

func TestNormalizePart_Idempotent(t *testing.T) {
	for _, p := range entity.Parts {
		once := NormalizePart(string(p))
		require.Equal(t, p, once)
		require.Equal(t, once, NormalizePart(string(once)))
	}
}
