package player

import (
	"fmt"

	"github.com/asticode/go-astiav"
)

// openDecoder allocates and opens a decoder for the stream described by params.
// kind names the stream in errors.
func openDecoder(kind string, params *astiav.CodecParameters) (*astiav.CodecContext, error) {
	codec := astiav.FindDecoder(params.CodecID())
	if codec == nil {
		return nil, fmt.Errorf("no %s decoder for %s", kind, params.CodecID())
	}

	ctx := astiav.AllocCodecContext(codec)
	if ctx == nil {
		return nil, fmt.Errorf("could not allocate %s codec context", kind)
	}
	if err := params.ToCodecContext(ctx); err != nil {
		ctx.Free()
		return nil, fmt.Errorf("could not copy %s codec parameters: %w", kind, err)
	}
	if err := ctx.Open(codec, nil); err != nil {
		ctx.Free()
		return nil, fmt.Errorf("could not open %s codec: %w", kind, err)
	}
	return ctx, nil
}
