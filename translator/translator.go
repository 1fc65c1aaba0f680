package translator

import (
	"context"

	gst "github.com/richinsley/goshadertranslator"
)

var translator *gst.ShaderTranslator

// GetTranslator returns the shared shader translator instance, creating
// it on first use. Translator startup spins up a wasm runtime, so the
// instance is reused for the life of the process.
func GetTranslator() (*gst.ShaderTranslator, error) {
	if translator == nil {
		t, err := gst.NewShaderTranslator(context.Background())
		if err != nil {
			return nil, err
		}
		translator = t
	}
	return translator, nil
}
