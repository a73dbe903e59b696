package bmf

import (
	"io"

	"github.com/sirupsen/logrus"
)

var discard = newDiscardLogger()

func newDiscardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
