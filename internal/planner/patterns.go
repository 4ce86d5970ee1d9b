package planner

import "fmt"

// dayPatterns keeps day 7 in its own group whenever the week does not divide evenly
var dayPatterns = map[int][][]int{
	1: {{1}, {2}, {3}, {4}, {5}, {6}, {7}},
	2: {{1, 2}, {3, 4}, {5, 6}, {7}},
	3: {{1, 2, 3}, {4, 5, 6}, {7}},
}

// DayPatterns partitions days 1..7 into contiguous groups that share recipe picks
func DayPatterns(maxRepeatingDays int) ([][]int, error) {
	pattern, ok := dayPatterns[maxRepeatingDays]
	if !ok {
		return nil, &InvalidConfigurationError{
			Err: fmt.Errorf("max_repeating_days must be 1, 2, or 3, got %d", maxRepeatingDays),
		}
	}

	groups := make([][]int, len(pattern))
	for i, g := range pattern {
		groups[i] = append([]int(nil), g...)
	}
	return groups, nil
}
