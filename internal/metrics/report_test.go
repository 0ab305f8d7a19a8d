package metrics_test

import (
	"os"
	"path/filepath"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/rwx-research/spawn-mocha/internal/errors"
	"github.com/rwx-research/spawn-mocha/internal/metrics"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func gaugeValue(metric *dto.Metric) float64 {
	return metric.GetGauge().GetValue()
}

var _ = Describe("Run", func() {
	gathered := func(run metrics.Run) map[string]float64 {
		families, err := run.Registry().Gather()
		Expect(err).ToNot(HaveOccurred())

		values := make(map[string]float64)
		for _, family := range families {
			Expect(family.GetMetric()).To(HaveLen(1))
			values[family.GetName()] = gaugeValue(family.GetMetric()[0])
		}
		return values
	}

	It("reports a successful run", func() {
		values := gathered(metrics.Run{Files: 3, Duration: 1500 * time.Millisecond, Finished: time.Unix(1700000000, 0)})

		Expect(values).To(Equal(map[string]float64{
			"spawn_mocha_files":                      3,
			"spawn_mocha_exit_code":                  0,
			"spawn_mocha_duration_seconds":           1.5,
			"spawn_mocha_success":                    1,
			"spawn_mocha_last_run_timestamp_seconds": 1700000000,
		}))
	})

	It("reports the exit code of a failed run", func() {
		run := metrics.Run{Files: 1, Err: errors.Wrap(errors.NewExecutionError(2, "mocha exited with code 2"), "stage")}

		Expect(run.ExitCode()).To(Equal(2))
		Expect(gathered(run)).To(HaveKeyWithValue("spawn_mocha_success", 0.0))
	})

	It("reports -1 for runs that failed to start", func() {
		run := metrics.Run{Err: errors.NewSystemError("mocha failed to start")}
		Expect(run.ExitCode()).To(Equal(-1))
	})

	It("writes a text file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "spawn-mocha.prom")

		Expect(metrics.Run{Files: 2}.WriteTextfile(path)).To(Succeed())

		content, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(ContainSubstring("# TYPE spawn_mocha_files gauge"))
		Expect(string(content)).To(ContainSubstring("spawn_mocha_files 2"))
	})
})
