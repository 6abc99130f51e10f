package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rugbym/Stochastic-simulation-assignment2/sim/theory"
)

// theoryCmd prints closed-form M/M/n and M/D/1 results.
var theoryCmd = &cobra.Command{
	Use:   "theory",
	Short: "Print closed-form queueing results",
	Run: func(cmd *cobra.Command, args []string) {
		rho := theory.Utilization(arrivalRate, serviceRate, servers)
		fmt.Printf("=== M/M/%d, lambda=%.4f, mu=%.4f, rho=%.4f ===\n", servers, arrivalRate, serviceRate, rho)

		p0, err := theory.P0(arrivalRate, serviceRate, servers)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		pw, _ := theory.WaitingProbability(arrivalRate, serviceRate, servers)
		wq, _ := theory.MMnMeanWait(arrivalRate, serviceRate, servers)
		fmt.Printf("P(empty)             : %.6f\n", p0)
		fmt.Printf("P(wait)              : %.6f\n", pw)
		fmt.Printf("Mean Wait (M/M/%d)    : %.6f\n", servers, wq)
		if servers == 1 {
			l, _ := theory.MM1MeanInSystem(arrivalRate, serviceRate)
			d, _ := theory.MD1MeanWait(arrivalRate, serviceRate)
			fmt.Printf("Mean In System       : %.6f\n", l)
			fmt.Printf("Mean Wait (M/D/1)    : %.6f\n", d)
		}
	},
}
