package proxy

import (
	"errors"

	"go.uber.org/zap"

	"imageproxy/internal/fetcher"
	"imageproxy/internal/options"
	"imageproxy/internal/processor"
)

// Image is the finished proxy response body plus the headers it must carry.
// The three passthrough cache headers are always present, empty when the
// upstream omitted them.
type Image struct {
	Body         []byte
	ContentType  string
	CacheControl string
	ETag         string
	LastModified string
}

// Pipeline turns a fetched source image into the final proxied image:
// decode, aspect-preserving resize when the computed target differs from the
// original, format negotiation and re-encode.
type Pipeline struct {
	codec  processor.Codec
	logger *zap.SugaredLogger
}

func NewPipeline(codec processor.Codec, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		codec:  codec,
		logger: logger,
	}
}

// Transform runs the pipeline. Failures come back as *HTTPError with a
// client-safe message; causes are logged here and never leave the process.
func (p *Pipeline) Transform(src *fetcher.SourceImage, opts *options.Options, acceptHeader string) (*Image, *HTTPError) {
	if opts.Original {
		// passthrough, the codec is never touched
		return &Image{
			Body:         src.Body,
			ContentType:  src.ContentType,
			CacheControl: src.CacheControl,
			ETag:         src.ETag,
			LastModified: src.LastModified,
		}, nil
	}

	decoded, err := p.codec.Decode(src.Body)
	if err != nil {
		if errors.Is(err, processor.ErrUnsupportedImage) {
			p.logger.Warnw("source image decode failed", "error", err.Error())
			return nil, ErrBadImage()
		}
		p.logger.Errorw("unexpected decode failure", "error", err.Error())
		return nil, ErrInternal()
	}

	// exactly one decoded image is live at any point; release it on every
	// exit path
	live := decoded
	defer func() { live.Release() }()

	width, height := processor.FitWithin(decoded.Width(), decoded.Height(), opts.Width, opts.Height)
	if width != decoded.Width() || height != decoded.Height() {
		resized, err := p.codec.Resize(decoded, width, height)
		if err != nil {
			p.logger.Errorw("image resize failed", "width", width, "height", height, "error", err.Error())
			return nil, ErrInternal()
		}

		live.Release()
		live = resized
	}

	format := processor.NegotiateFormat(opts.Format, acceptHeader)

	body, err := p.codec.Encode(live, format, opts.Quality)
	if err != nil {
		p.logger.Errorw("image encode failed", "format", format, "quality", opts.Quality, "error", err.Error())
		return nil, ErrInternal()
	}

	return &Image{
		Body:         body,
		ContentType:  "image/" + format,
		CacheControl: src.CacheControl,
		ETag:         src.ETag,
		LastModified: src.LastModified,
	}, nil
}
