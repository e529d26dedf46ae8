package parser

import (
	"io"
	"os"

	"github.com/Iskandar1009/job-resume-matching/internal/constants"
)

// IsValidPDF 检查文件是否为有效的PDF：最小文件大小 + 固定的魔数头
func IsValidPDF(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	if info.Size() < constants.MinValidPDFBytes {
		return false
	}

	f, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, len(constants.PDFMagicHeader))
	if _, err := io.ReadFull(f, header); err != nil {
		return false
	}
	return string(header) == constants.PDFMagicHeader
}
