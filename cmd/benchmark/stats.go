package main

import "math"

type summary struct {
	mean   float64
	min    float64
	max    float64
	stddev float64 // sample standard deviation, zero for a single value
}

func summarize(values []float64) summary {
	if len(values) == 0 {
		return summary{}
	}

	s := summary{min: values[0], max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.mean = sum / float64(len(values))

	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			sq += (v - s.mean) * (v - s.mean)
		}
		s.stddev = math.Sqrt(sq / float64(len(values)-1))
	}

	return s
}
