package ballpiterr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmaglic/ballpit/ballpiterr"
)

func TestMessageKnownCode(t *testing.T) {
	require.Equal(t, "Invalid probe radius input. The large probe must have a larger radius than the small probe.",
		ballpiterr.Message(ballpiterr.CodeInvalidProbeRadius))
}

func TestMessageUnknownCodeFallsBack(t *testing.T) {
	require.Equal(t, "Unidentified error code.", ballpiterr.Message(ballpiterr.Code(9999)))
}

func TestErrorImplementsError(t *testing.T) {
	err := ballpiterr.New(ballpiterr.CodeCavityOverflow)
	require.EqualError(t, err, "201: Total number of cavities (255) exceeded. Consider changing the probe size. Calculation will proceed.")
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := ballpiterr.Wrap(ballpiterr.CodeInvalidStructureFile, cause)
	require.ErrorIs(t, err, cause)
}
