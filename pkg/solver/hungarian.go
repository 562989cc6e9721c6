package solver

import "math"

// hungarian 求解 n×m 成本矩阵（n ≤ m）的最小成本一对一分配
// 基于位势的 Kuhn-Munkres 实现，复杂度 O(n²m)
// 返回 match[i] = 分配给第 i 行的列
func hungarian(a [][]float64) []int {
	n := len(a)
	if n == 0 {
		return nil
	}
	m := len(a[0])

	const inf = math.MaxFloat64

	// u/v 为行列位势，p[j] 为列 j 匹配的行（1-based，0 表示未匹配）
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	p := make([]int, m+1)
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := 0

			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := a[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// 沿增广路径回溯更新匹配
		for {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
			if j0 == 0 {
				break
			}
		}
	}

	match := make([]int, n)
	for i := range match {
		match[i] = -1
	}
	for j := 1; j <= m; j++ {
		if p[j] > 0 {
			match[p[j]-1] = j - 1
		}
	}
	return match
}

// assign 对任意形状矩阵求最小成本分配，返回 (行, 列) 对
// 行多于列时转置求解，未匹配的行/列直接省略
func assign(cost [][]float64) [][2]int {
	n := len(cost)
	if n == 0 || len(cost[0]) == 0 {
		return nil
	}
	m := len(cost[0])

	if n <= m {
		match := hungarian(cost)
		pairs := make([][2]int, 0, n)
		for i, j := range match {
			if j >= 0 {
				pairs = append(pairs, [2]int{i, j})
			}
		}
		return pairs
	}

	// 行多于列：转置后求解再换回
	transposed := make([][]float64, m)
	for j := 0; j < m; j++ {
		transposed[j] = make([]float64, n)
		for i := 0; i < n; i++ {
			transposed[j][i] = cost[i][j]
		}
	}
	match := hungarian(transposed)
	pairs := make([][2]int, 0, m)
	for j, i := range match {
		if i >= 0 {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}
