package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	FormatAuto = "auto"
	FormatWebP = "webp"
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

const DefaultQuality = 85

// PassthroughToken short-circuits the whole pipeline: the source bytes
// are returned untouched.
const PassthroughToken = "_"

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
}

// Options is the validated, read-only result of parsing one request's
// operations string. Zero width/height means "no constraint on that axis".
type Options struct {
	Width    int    `validate:"gte=0"`
	Height   int    `validate:"gte=0"`
	Format   string `validate:"oneof=webp jpeg png auto"`
	Quality  int    `validate:"gte=1,lte=100"`
	Original bool
}

// Parse builds Options from the compact comma-separated operations string,
// e.g. "w_400,f_webp,q_80". Parsing is two-phase: a tolerant tokenizer merges
// key_value tokens into a candidate (bad or out-of-range values are dropped,
// unknown keys ignored, last occurrence of a key wins), then the merged
// candidate is checked against the struct schema. Only a schema failure is a
// hard error; a single bad token never fails the request.
func Parse(ops string, maxWidth, maxHeight int) (*Options, error) {
	opts := &Options{
		Format:  FormatAuto,
		Quality: DefaultQuality,
	}

	if ops == PassthroughToken {
		opts.Original = true
		return opts, nil
	}

	for _, token := range strings.Split(ops, ",") {
		parts := strings.SplitN(token, "_", 2)
		if len(parts) != 2 {
			continue
		}

		key, value := parts[0], parts[1]

		switch key {
		case "w":
			if w, ok := parseBoundedInt(value, maxWidth); ok {
				opts.Width = w
			}
		case "h":
			if h, ok := parseBoundedInt(value, maxHeight); ok {
				opts.Height = h
			}
		case "s":
			// size is atomic, both dimensions must be valid
			dims := strings.SplitN(value, "x", 2)
			if len(dims) != 2 {
				continue
			}
			w, wOK := parseBoundedInt(dims[0], maxWidth)
			h, hOK := parseBoundedInt(dims[1], maxHeight)
			if wOK && hOK {
				opts.Width = w
				opts.Height = h
			}
		case "f":
			switch value {
			case FormatWebP, FormatJPEG, FormatPNG, FormatAuto:
				opts.Format = value
			}
		case "q":
			if q, ok := parseBoundedInt(value, 100); ok {
				opts.Quality = q
			}
		}
	}

	if err := Validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid transformation options %q: %w", ops, err)
	}

	return opts, nil
}

// parseBoundedInt reports a value usable only when it is a whole number in
// [1, max]. Out-of-bound values are rejected, never clamped.
func parseBoundedInt(value string, max int) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > max {
		return 0, false
	}

	return n, true
}

// String renders the canonical operations string for the options, suitable
// for cache keys and for feeding back into Parse.
func (o *Options) String() string {
	if o.Original {
		return PassthroughToken
	}

	tokens := make([]string, 0, 4)
	if o.Width > 0 {
		tokens = append(tokens, fmt.Sprintf("w_%d", o.Width))
	}
	if o.Height > 0 {
		tokens = append(tokens, fmt.Sprintf("h_%d", o.Height))
	}
	tokens = append(tokens, "f_"+o.Format, fmt.Sprintf("q_%d", o.Quality))

	return strings.Join(tokens, ",")
}
