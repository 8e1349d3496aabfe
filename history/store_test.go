package history_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/kardolus/conscience/history"
)

func TestUnitStore(t *testing.T) {
	spec.Run(t, "Testing the history store", testStore, spec.Report(report.Terminal{}))
}

func testStore(t *testing.T, when spec.G, it spec.S) {
	var (
		subject *history.FileIO
		path    string
	)

	it.Before(func() {
		RegisterTestingT(t)
		path = filepath.Join(t.TempDir(), "nested", "history.yaml")
		subject = history.New().WithFilePath(path)
	})

	it("round trips entries through the file", func() {
		entries := []history.Entry{
			{Scenario: "abc", Step: "I press \"d\"", Seed: 3, Hint: "bound keys: <Left>", Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		}
		Expect(subject.Write(entries)).To(Succeed())

		read, err := subject.Read()
		Expect(err).NotTo(HaveOccurred())
		Expect(read).To(Equal(entries))
	})

	it("reports a missing file as not existing", func() {
		_, err := subject.Read()
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	it("deletes the file and tolerates deleting twice", func() {
		Expect(subject.Write(nil)).To(Succeed())
		Expect(subject.Delete()).To(Succeed())
		Expect(subject.Delete()).To(Succeed())
		_, err := os.Stat(path)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	it("wraps parse errors with the file name", func() {
		Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
		Expect(os.WriteFile(path, []byte("{not: [yaml"), 0644)).To(Succeed())

		_, err := subject.Read()
		Expect(err).To(MatchError(ContainSubstring("parse " + path)))
	})
}
