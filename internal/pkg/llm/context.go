package llm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	pkgerrors "github.com/pkg/errors"
)

// ErrContextNotFound 简历描述文件不存在
var ErrContextNotFound = errors.New("context file not found")

// LoadContext 读取简历描述文本，作为 system prompt 的上下文
func LoadContext(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrContextNotFound, path)
		}
		return "", pkgerrors.Wrapf(err, "read context file %s", path)
	}
	return string(data), nil
}
