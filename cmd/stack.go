package cmd

import (
	"fmt"
	"io"
	"strconv"

	"goldilocks/internal/modules/numstack"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newStackCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack OP...",
		Short: "Run operations against a fresh number stack",
		Long: `Runs the given operations in order against an empty stack of numbers.
Operations are "push X", "pop", "peek", "empty" and "len". The results of
pop, peek, empty and len are printed one per line. Popping or peeking an
empty stack is an error. Flags must come before the first operation;
everything after it is an operand, so negative values need no escaping.`,
		Example: "  goldilocks stack push 1.5 push -2 pop peek",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStack(cmd.OutOrStdout(), args, a.logger)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func runStack(out io.Writer, args []string, logger *zap.Logger) error {
	s := numstack.New()

	for i := 0; i < len(args); i++ {
		op := args[i]
		switch op {
		case "push":
			if i+1 >= len(args) {
				return fmt.Errorf("push at position %d: missing value", i)
			}
			i++
			x, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return fmt.Errorf("push at position %d: %w", i-1, err)
			}
			s.Push(x)
			logger.Debug("push", zap.Float64("value", x), zap.Int("len", s.Len()))
		case "pop", "peek":
			var (
				x   float64
				err error
			)
			if op == "pop" {
				x, err = s.Pop()
			} else {
				x, err = s.Peek()
			}
			if err != nil {
				return fmt.Errorf("operation at position %d: %w", i, err)
			}
			fmt.Fprintln(out, strconv.FormatFloat(x, 'g', -1, 64))
		case "empty":
			fmt.Fprintln(out, s.Empty())
		case "len":
			fmt.Fprintln(out, s.Len())
		default:
			return fmt.Errorf("unknown operation %q at position %d", op, i)
		}
	}

	logger.Debug("stack operations completed", zap.Int("operations", len(args)), zap.Int("remaining", s.Len()))
	return nil
}
