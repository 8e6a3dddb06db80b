// This file is part of Apple2Go.
//
// Apple2Go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Apple2Go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Apple2Go.  If not, see <https://www.gnu.org/licenses/>.

package logger_test

import (
	"strings"
	"testing"

	"github.com/iflan/apple2go/logger"
	"github.com/iflan/apple2go/test"
)

func TestLogDedupe(t *testing.T) {
	logger.Clear()

	logger.Log("test", "hello")
	logger.Log("test", "hello")
	logger.Log("test", "hello")

	s := strings.Builder{}
	logger.Write(&s)
	test.Equate(t, s.String(), "test: hello (repeat x3)\n")
}

func TestLogTail(t *testing.T) {
	logger.Clear()

	logger.Log("test", "one")
	logger.Log("test", "two")
	logger.Log("test", "three")

	s := strings.Builder{}
	logger.Tail(&s, 2)
	test.Equate(t, s.String(), "test: two\ntest: three\n")
}
