package material

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Random builds a material of the given kind with randomized parameters
func Random(kind Kind, random *rand.Rand) (Material, error) {
	switch kind {
	case KindLambertian:
		return RandomLambertian(random), nil
	case KindMetal:
		return RandomMetal(random), nil
	case KindMirror:
		return RandomMirror(random), nil
	case KindDielectric:
		return RandomDielectric(random), nil
	case KindLight:
		return RandomLight(random), nil
	case KindFilter:
		return RandomFilter(random), nil
	case KindNormal:
		return NewNormal(core.RandomFloat(random, 0.25, 1), 1), nil
	case KindAbsorber:
		return NewAbsorber(), nil
	default:
		return nil, fmt.Errorf("unknown material kind %q", kind)
	}
}
