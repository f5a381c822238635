package extrema

import (
	"errors"
	"math"
	"sort"
)

// Errors returned by the detection engine.
var (
	ErrWLen      = errors.New("extrema: window length must be 0 or >= 2")
	ErrDistance  = errors.New("extrema: distance must be >= 0")
	ErrRelHeight = errors.New("extrema: relative height must be >= 0")
)

// peaksInSignal runs the full constraint pipeline over x and returns the
// surviving peak indices in increasing order. Constraints are applied in a
// fixed order: plateau size, height, threshold, distance, prominence, width.
func peaksInSignal(x []float64, p Params) ([]int, error) {
	if p.WLen == 1 || p.WLen < 0 {
		return nil, ErrWLen
	}

	if p.Distance < 0 {
		return nil, ErrDistance
	}

	if p.RelHeight < 0 {
		return nil, ErrRelHeight
	}

	peaks, leftEdges, rightEdges := localMaxima(x)

	if p.PlateauSize != nil {
		keep := make([]bool, len(peaks))
		for i := range peaks {
			keep[i] = p.PlateauSize.contains(float64(rightEdges[i] - leftEdges[i] + 1))
		}

		peaks = filterInts(peaks, keep)
		leftEdges = filterInts(leftEdges, keep)
		rightEdges = filterInts(rightEdges, keep)
	}

	if p.Height != nil {
		keep := make([]bool, len(peaks))
		for i, pk := range peaks {
			keep[i] = p.Height.contains(x[pk])
		}

		peaks = filterInts(peaks, keep)
	}

	if p.Threshold != nil {
		keep := make([]bool, len(peaks))
		for i, pk := range peaks {
			left := x[pk] - x[pk-1]
			right := x[pk] - x[pk+1]

			lesser, greater := left, right
			if lesser > greater {
				lesser, greater = greater, lesser
			}

			ok := true
			if !math.IsNaN(p.Threshold.Lower) && lesser < p.Threshold.Lower {
				ok = false
			}

			if !math.IsNaN(p.Threshold.Upper) && greater > p.Threshold.Upper {
				ok = false
			}

			keep[i] = ok
		}

		peaks = filterInts(peaks, keep)
	}

	if p.Distance > 0 {
		heights := make([]float64, len(peaks))
		for i, pk := range peaks {
			heights[i] = x[pk]
		}

		peaks = filterInts(peaks, selectByDistance(peaks, heights, p.Distance))
	}

	if p.Prominence != nil || p.Width != nil {
		prom, leftBases, rightBases := prominences(x, peaks, p.WLen)

		if p.Prominence != nil {
			keep := make([]bool, len(peaks))
			for i := range peaks {
				keep[i] = p.Prominence.contains(prom[i])
			}

			peaks = filterInts(peaks, keep)
			prom = filterFloats(prom, keep)
			leftBases = filterInts(leftBases, keep)
			rightBases = filterInts(rightBases, keep)
		}

		if p.Width != nil {
			w := widths(x, peaks, p.relHeight(), prom, leftBases, rightBases)

			keep := make([]bool, len(peaks))
			for i := range peaks {
				keep[i] = p.Width.contains(w[i])
			}

			peaks = filterInts(peaks, keep)
		}
	}

	return peaks, nil
}

// localMaxima finds all local maxima of x, treating flat plateaus as a
// single extremum located at the plateau midpoint. It returns the midpoints
// together with the plateau edges, all strictly increasing. The first and
// last sample can never qualify.
func localMaxima(x []float64) (mids, leftEdges, rightEdges []int) {
	iMax := len(x) - 1

	i := 1
	for i < iMax {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < iMax && x[ahead] == x[i] {
				ahead++
			}

			if x[ahead] < x[i] {
				left := i
				right := ahead - 1

				mids = append(mids, (left+right)/2)
				leftEdges = append(leftEdges, left)
				rightEdges = append(rightEdges, right)

				i = ahead
			}
		}

		i++
	}

	return mids, leftEdges, rightEdges
}

// selectByDistance keeps the subset of peaks separated by at least distance
// samples, removing lower-priority (smaller) peaks first.
func selectByDistance(peaks []int, priority []float64, distance float64) []bool {
	n := len(peaks)
	keep := make([]bool, n)

	for i := range keep {
		keep[i] = true
	}

	minDist := int(math.Ceil(distance))

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return priority[order[a]] < priority[order[b]]
	})

	for i := n - 1; i >= 0; i-- {
		j := order[i]
		if !keep[j] {
			continue
		}

		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < minDist; k-- {
			keep[k] = false
		}

		for k := j + 1; k < n && peaks[k]-peaks[j] < minDist; k++ {
			keep[k] = false
		}
	}

	return keep
}

// prominences computes the prominence of each peak: its height above the
// higher of the two base levels found by descending on each side until a
// taller sample (or the window edge) is met. The base indices are returned
// for the width computation.
func prominences(x []float64, peaks []int, wlen int) (prom []float64, leftBases, rightBases []int) {
	prom = make([]float64, len(peaks))
	leftBases = make([]int, len(peaks))
	rightBases = make([]int, len(peaks))

	for pi, peak := range peaks {
		iMin, iMax := 0, len(x)-1

		if wlen >= 2 {
			if lo := peak - wlen/2; lo > iMin {
				iMin = lo
			}

			if hi := peak + wlen/2; hi < iMax {
				iMax = hi
			}
		}

		leftMin := x[peak]
		leftBases[pi] = peak

		for i := peak; i >= iMin && x[i] <= x[peak]; i-- {
			if x[i] < leftMin {
				leftMin = x[i]
				leftBases[pi] = i
			}
		}

		rightMin := x[peak]
		rightBases[pi] = peak

		for i := peak; i <= iMax && x[i] <= x[peak]; i++ {
			if x[i] < rightMin {
				rightMin = x[i]
				rightBases[pi] = i
			}
		}

		base := leftMin
		if rightMin > base {
			base = rightMin
		}

		prom[pi] = x[peak] - base
	}

	return prom, leftBases, rightBases
}

// widths measures each peak's width in samples at the height
// x[peak] - prominence*relHeight, interpolating the crossing points linearly
// between samples.
func widths(x []float64, peaks []int, relHeight float64, prom []float64, leftBases, rightBases []int) []float64 {
	out := make([]float64, len(peaks))

	for pi, peak := range peaks {
		height := x[peak] - prom[pi]*relHeight

		i := peak
		for i > leftBases[pi] && height < x[i] {
			i--
		}

		leftIP := float64(i)
		if x[i] < height {
			leftIP += (height - x[i]) / (x[i+1] - x[i])
		}

		i = peak
		for i < rightBases[pi] && height < x[i] {
			i++
		}

		rightIP := float64(i)
		if x[i] < height {
			rightIP -= (height - x[i]) / (x[i-1] - x[i])
		}

		out[pi] = rightIP - leftIP
	}

	return out
}

func filterInts(vals []int, keep []bool) []int {
	out := vals[:0]
	for i, v := range vals {
		if keep[i] {
			out = append(out, v)
		}
	}

	return out
}

func filterFloats(vals []float64, keep []bool) []float64 {
	out := vals[:0]
	for i, v := range vals {
		if keep[i] {
			out = append(out, v)
		}
	}

	return out
}
