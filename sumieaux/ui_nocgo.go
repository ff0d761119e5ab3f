//go:build tinygo || !cgo

package sumieaux

import (
	"errors"

	"github.com/soypat/sumie"
)

func ui(mesh sumie.Mesh, app *App, cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
