package portfolio

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/wonny/frontier/internal/contracts"
)

// maxConditionNumber is the viability threshold for the covariance inversion:
// beyond it the solve would amplify input noise past any useful precision.
const maxConditionNumber = 1e12

// TangencyWeights computes the maximum-Sharpe (tangency) portfolio weights in
// closed form as Σ⁻¹·μ_excess, where excessReturns holds the annualized
// returns minus the risk-free rate. The analytic solution places no bound
// constraints on the weights, so short positions can appear. With rescale set
// the weights are normalized to sum to one.
//
// The covariance matrix must be positive definite; a failed Cholesky
// factorization or an excessive condition number surfaces as
// ErrSingularCovariance.
func TangencyWeights(cov *mat.SymDense, excessReturns []float64, rescale bool) ([]float64, error) {
	n := cov.SymmetricDim()
	if n == 0 {
		return nil, fmt.Errorf("%w: empty covariance matrix", contracts.ErrInputShape)
	}
	if len(excessReturns) != n {
		return nil, fmt.Errorf("%w: %d excess returns vs %dx%d covariance",
			contracts.ErrInputShape, len(excessReturns), n, n)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, fmt.Errorf("%w: Cholesky factorization failed", contracts.ErrSingularCovariance)
	}
	if cond := chol.Cond(); cond > maxConditionNumber {
		return nil, fmt.Errorf("%w: condition number %.3g exceeds %.0g",
			contracts.ErrSingularCovariance, cond, float64(maxConditionNumber))
	}

	var solved mat.VecDense
	if err := chol.SolveVecTo(&solved, mat.NewVecDense(n, excessReturns)); err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrSingularCovariance, err)
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = solved.AtVec(i)
	}

	if rescale {
		var sum float64
		for _, w := range weights {
			sum += w
		}
		if sum == 0 {
			return nil, fmt.Errorf("%w: tangency weights sum to zero, cannot rescale", contracts.ErrDegenerateInput)
		}
		for i := range weights {
			weights[i] /= sum
		}
	}

	return weights, nil
}
