package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/binops/internal/dispatch"
	"github.com/born-ml/binops/internal/ops"
	"github.com/born-ml/binops/internal/tensor"
)

type evalOptions struct {
	dtype    string
	rhsDtype string
	alpha    string
	scalar   bool
}

func newEvalCmd(a *app) *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval OP LHS RHS",
		Short: "Evaluate one binary operation on 1-D inputs",
		Long: `Evaluates OP on comma-separated values and prints the result dtype and values.

With --scalar, RHS is a single value passed through the scalar overload.

Examples:
  binops eval add 1,2,3 4,5,6 --alpha 2
  binops eval lt 1,2,3 2 --scalar
  binops eval div 1,2 0.5,4 --dtype float32 --rhs-dtype float64`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.run(a.dispatcher, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			a.logger.Debug("evaluated",
				zap.String("op", args[0]),
				zap.Stringer("dtype", result.DType()),
				zap.Int("elements", result.NumElements()))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", result.DType(), result.Values())
			return err
		},
	}
	cmd.Flags().StringVar(&opts.dtype, "dtype", "int32", "dtype of LHS")
	cmd.Flags().StringVar(&opts.rhsDtype, "rhs-dtype", "", "dtype of RHS (defaults to --dtype)")
	cmd.Flags().StringVar(&opts.alpha, "alpha", "1", "multiplier of RHS for add, sub and rsub")
	cmd.Flags().BoolVar(&opts.scalar, "scalar", false, "treat RHS as a scalar")
	return cmd
}

func (o *evalOptions) run(d *ops.Dispatcher, op, lhs, rhs string) (*tensor.RawTensor, error) {
	lhsType, err := parseDataType(o.dtype)
	if err != nil {
		return nil, err
	}
	a, err := parseTensor(lhs, lhsType)
	if err != nil {
		return nil, fmt.Errorf("LHS: %w", err)
	}
	alpha, err := tensor.ParseScalar(o.alpha)
	if err != nil {
		return nil, fmt.Errorf("--alpha: %w", err)
	}

	if o.scalar {
		s, err := tensor.ParseScalar(rhs)
		if err != nil {
			return nil, fmt.Errorf("RHS: %w", err)
		}
		return evalScalar(d, op, a, s, alpha)
	}

	rhsType := lhsType
	if o.rhsDtype != "" {
		if rhsType, err = parseDataType(o.rhsDtype); err != nil {
			return nil, err
		}
	}
	b, err := parseTensor(rhs, rhsType)
	if err != nil {
		return nil, fmt.Errorf("RHS: %w", err)
	}
	return evalTensor(d, op, a, b, alpha)
}

func evalTensor(d *ops.Dispatcher, op string, a, b *tensor.RawTensor, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	switch op {
	case "add":
		return d.Add(a, b, alpha)
	case "sub":
		return d.Sub(a, b, alpha)
	case "rsub":
		return d.Rsub(a, b, alpha)
	case "mul":
		return d.Mul(a, b)
	case "div":
		return d.Div(a, b)
	case "atan2":
		return d.Atan2(a, b)
	case "logical_xor":
		return d.LogicalXor(a, b)
	}
	c, err := comparison(d, op)
	if err != nil {
		return nil, err
	}
	return c.New(a, b)
}

func evalScalar(d *ops.Dispatcher, op string, a *tensor.RawTensor, s, alpha tensor.Scalar) (*tensor.RawTensor, error) {
	switch op {
	case "add":
		return d.AddScalar(a, s, alpha)
	case "sub":
		return d.SubScalar(a, s, alpha)
	case "rsub":
		return d.RsubScalar(a, s, alpha)
	case "mul":
		return d.MulScalar(a, s)
	case "div":
		return d.DivScalar(a, s)
	case "atan2":
		return d.Atan2(a, tensor.WrapScalar(s))
	case "logical_xor":
		return d.LogicalXor(a, tensor.WrapScalar(s))
	}
	c, err := comparison(d, op)
	if err != nil {
		return nil, err
	}
	return c.Scalar(a, s)
}

func comparison(d *ops.Dispatcher, op string) (*ops.Comparison, error) {
	id, ok := dispatch.ParseOpID(op)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	return d.Compare(id)
}

func parseDataType(name string) (tensor.DataType, error) {
	dt, ok := tensor.ParseDataType(strings.ToLower(name))
	if !ok {
		return dt, fmt.Errorf("unknown dtype %q", name)
	}
	return dt, nil
}

// parseTensor builds a 1-D tensor from comma-separated values.
func parseTensor(list string, dt tensor.DataType) (*tensor.RawTensor, error) {
	fields := strings.Split(list, ",")
	values := make([]tensor.Scalar, len(fields))
	for i, f := range fields {
		s, err := tensor.ParseScalar(f)
		if err != nil {
			return nil, err
		}
		values[i] = s
	}
	return tensor.FromScalars(values, tensor.Shape{len(values)}, dt)
}
