package balancer

import "sort"

// kmeans1D 确定性的一维 k-means 聚类
// 质心从排序后的分位点初始化，迭代固定上限，结果不依赖随机种子。
// 返回每个值的簇编号，簇编号已按质心升序重排：0 为最低质心
func kmeans1D(values []float64, k int) ([]int, []float64) {
	n := len(values)
	if n == 0 || k <= 0 {
		return nil, nil
	}
	if k > n {
		k = n
	}

	// 分位点初始化质心
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	centroids := make([]float64, k)
	for c := 0; c < k; c++ {
		idx := (2*c + 1) * n / (2 * k)
		if idx >= n {
			idx = n - 1
		}
		centroids[c] = sorted[idx]
	}

	labels := make([]int, n)
	const maxIterations = 100

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		// 指派阶段：就近质心，平局取编号小者
		for i, v := range values {
			best := 0
			bestDist := abs(v - centroids[0])
			for c := 1; c < k; c++ {
				d := abs(v - centroids[c])
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		// 更新阶段：空簇保持原质心
		sums := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			sums[labels[i]] += v
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}

		if !changed {
			break
		}
	}

	// 按质心升序重排簇编号，保证簇身份由质心顺序决定
	order := make([]int, k)
	for c := range order {
		order[c] = c
	}
	sort.SliceStable(order, func(a, b int) bool {
		return centroids[order[a]] < centroids[order[b]]
	})
	remap := make([]int, k)
	for rank, c := range order {
		remap[c] = rank
	}

	finalLabels := make([]int, n)
	for i := range labels {
		finalLabels[i] = remap[labels[i]]
	}
	finalCentroids := make([]float64, k)
	for rank, c := range order {
		finalCentroids[rank] = centroids[c]
	}

	return finalLabels, finalCentroids
}

// distinctCount 统计不同取值的数量
func distinctCount(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
