//go:build !darwin && !windows

package colorscheme

func platformDetectors() []Detector {
	return nil
}
