package main

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/mittwald/volumeprobe/pkg/cli"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	writeCmd.Flags().IntP("count", "n", 1, "number of records to write")
	writeCmd.Flags().IntP("parallel", "p", 1, "maximum number of writes in flight")

	ctlCommand.AddCommand(writeCmd)
}

var writeCmd = &cobra.Command{
	Use:   "write [message]",
	Short: "Write a record to the volume",
	Long: "This command can be used to append a record to the shared file and replace the instance file.\n\n" +
		"With --count and --parallel, many records are written concurrently to check that appends from " +
		"several writers never interleave.",
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		count, _ := cmd.Flags().GetInt("count")
		parallel, _ := cmd.Flags().GetInt("parallel")

		if count < 1 {
			return errors.Errorf("--count must be at least 1, got %d", count)
		}

		apiClient := cli.NewAPIClient(apiAddress)
		if count == 1 {
			resp := apiClient.Write(message)
			return printOrRender(resp, func() {
				fmt.Print(styleSuccessBox.Render(strings.TrimRight(resp.Body.Wrote, "\n")))
				fmt.Println()
				fmt.Println(styleDetails.Render(detailLine("shared file:", styleHighlight.Render(resp.Body.Files.Shared))))
				fmt.Println(styleDetails.Render(detailLine("instance file:", styleHighlight.Render(resp.Body.Files.Instance))))
			})
		}

		written, err := writeMany(apiClient, message, count, parallel)
		if err != nil {
			return errors.Wrapf(err, "%d of %d writes succeeded", written, count)
		}

		fmt.Println(styleSuccessBox.Render(fmt.Sprintf("✅ wrote %s records using up to %s parallel writers",
			styleHighlight.Render(fmt.Sprintf("%d", written)),
			styleHighlight.Render(fmt.Sprintf("%d", parallel)),
		)))
		return nil
	},
}

// writeMany issues count writes with at most parallel requests in flight and
// returns the number of successful writes.
func writeMany(apiClient *cli.APIClient, message string, count, parallel int) (int64, error) {
	if parallel < 1 {
		parallel = 1
	}

	var written int64
	g := errgroup.Group{}
	g.SetLimit(parallel)

	for i := 0; i < count; i++ {
		msg := message
		if msg != "" {
			msg = fmt.Sprintf("%s #%d", message, i+1)
		}

		g.Go(func() error {
			if err := apiClient.Write(msg).Err(); err != nil {
				return err
			}
			atomic.AddInt64(&written, 1)
			return nil
		})
	}

	err := g.Wait()
	return atomic.LoadInt64(&written), err
}
