package chi

import (
	"math"
	"strconv"

	"github.com/achernar1030/polyroot/internal/domain/curve"
	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	"github.com/achernar1030/polyroot/internal/render/text"
	"github.com/achernar1030/polyroot/internal/usecase/solve"
)

// errorCode is the machine-readable error code of an ErrorResponse.
type errorCode string

const (
	codeBadRequest              errorCode = "bad_request"
	codeUnauthorized            errorCode = "unauthorized"
	codeInvalidInputType        errorCode = "invalid_input_type"
	codeInvalidCoefficientCount errorCode = "invalid_coefficient_count"
	codeRootComputation         errorCode = "root_computation_error"
	codeNoRealRoots             errorCode = "no_real_roots"
	codeInternalError           errorCode = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
	Count   *int      `json:"count,omitempty"`
}

// TermResponse is one labelled coefficient of the input form.
type TermResponse struct {
	Power int     `json:"power"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DefaultsResponse lists the initial coefficient values.
type DefaultsResponse struct {
	Terms []TermResponse `json:"terms"`
}

// ComplexNumber is a JSON complex number.
type ComplexNumber struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// RootResponse is one root in solver order.
type RootResponse struct {
	Real    float64 `json:"real"`
	Imag    float64 `json:"imag"`
	Kind    string  `json:"kind"`
	Display string  `json:"display"`
}

// WarningResponse is a non-fatal diagnostic.
type WarningResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Pair is an [x, y] point. Coordinates that overflowed to NaN or ±Inf
// encode as null, which encoding/json cannot do for float64.
type Pair [2]float64

// MarshalJSON implements json.Marshaler.
func (p Pair) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 48)
	b = append(b, '[')
	b = appendCoordinate(b, p[0])
	b = append(b, ',')
	b = appendCoordinate(b, p[1])
	return append(b, ']'), nil
}

func appendCoordinate(b []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(b, "null"...)
	}
	return strconv.AppendFloat(b, v, 'g', -1, 64)
}

// CurveResponse is the sampled curve as [x, y] pairs.
type CurveResponse struct {
	MinX    float64 `json:"min_x"`
	MaxX    float64 `json:"max_x"`
	Samples []Pair  `json:"samples,omitempty"`
	Markers []Pair  `json:"markers"`
}

// RootsResponse is the result of POST /v1/roots.
type RootsResponse struct {
	Polynomial      string            `json:"polynomial"`
	Degree          int               `json:"degree"`
	EffectiveDegree int               `json:"effective_degree"`
	Roots           []RootResponse    `json:"roots"`
	RealRoots       []float64         `json:"real_roots"`
	ComplexRoots    []ComplexNumber   `json:"complex_roots"`
	Warnings        []WarningResponse `json:"warnings"`
	NoRealRoots     bool              `json:"no_real_roots"`
	Curve           *CurveResponse    `json:"curve,omitempty"`
}

// NewDefaultsResponse converts the default form terms.
func NewDefaultsResponse(terms []polynomial.Term) DefaultsResponse {
	out := make([]TermResponse, len(terms))
	for i, t := range terms {
		out[i] = TermResponse{Power: t.Power, Label: t.Label, Value: t.Value}
	}
	return DefaultsResponse{Terms: out}
}

// NewRootsResponse converts a solve result; samples are dropped unless withSamples.
func NewRootsResponse(res solve.Result, withSamples bool) RootsResponse {
	all := res.Roots.All()
	rs := make([]RootResponse, len(all))
	for i, r := range all {
		rs[i] = RootResponse{
			Real:    real(r.Value),
			Imag:    imag(r.Value),
			Kind:    string(r.Kind),
			Display: text.Display(r),
		}
	}

	cs := make([]ComplexNumber, len(res.Roots.Complex()))
	for i, z := range res.Roots.Complex() {
		cs[i] = ComplexNumber{Real: real(z), Imag: imag(z)}
	}

	ws := make([]WarningResponse, len(res.Warnings))
	for i, w := range res.Warnings {
		ws[i] = WarningResponse{Code: string(w.Code), Message: w.Message}
	}

	reals := make([]float64, len(res.Roots.Real()))
	copy(reals, res.Roots.Real())

	resp := RootsResponse{
		Polynomial:      res.Polynomial.String(),
		Degree:          polynomial.Degree,
		EffectiveDegree: res.Polynomial.EffectiveDegree(),
		Roots:           rs,
		RealRoots:       reals,
		ComplexRoots:    cs,
		Warnings:        ws,
		NoRealRoots:     res.NoRealRoots,
	}
	if res.Curve != nil {
		resp.Curve = curveToResponse(*res.Curve, withSamples)
	}
	return resp
}

func curveToResponse(c curve.Curve, withSamples bool) *CurveResponse {
	out := &CurveResponse{
		MinX:    c.MinX,
		MaxX:    c.MaxX,
		Markers: pairs(c.Markers),
	}
	if withSamples {
		out.Samples = pairs(c.Samples)
	}
	return out
}

func pairs(points []curve.Point) []Pair {
	out := make([]Pair, len(points))
	for i, p := range points {
		out[i] = Pair{p.X, p.Y}
	}
	return out
}
