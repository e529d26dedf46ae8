package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"os"
	"sort"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Iskandar1009/job-resume-matching/internal/constants"
	"github.com/Iskandar1009/job-resume-matching/internal/logger"
	"github.com/Iskandar1009/job-resume-matching/internal/matching"
	"github.com/Iskandar1009/job-resume-matching/internal/parser"
	"github.com/Iskandar1009/job-resume-matching/internal/storage"
	"github.com/Iskandar1009/job-resume-matching/internal/storage/models"
	pkgutils "github.com/Iskandar1009/job-resume-matching/pkg/utils"
)

// MatchHandler 处理批量简历与职位描述的匹配请求
type MatchHandler struct {
	scorer  *matching.PairScorer
	storage *storage.Storage // 可选：文档归档与匹配历史
}

// NewMatchHandler 创建匹配处理器
func NewMatchHandler(scorer *matching.PairScorer, store *storage.Storage) *MatchHandler {
	return &MatchHandler{scorer: scorer, storage: store}
}

// MatchItem 单份简历对单个职位的匹配结果
type MatchItem struct {
	Resume                 string                 `json:"resume"`
	MatchPercent           float64                `json:"match_percent"`
	NormalizedMatchPercent float64                `json:"normalized_match_percent"`
	SectionScores          matching.SectionScores `json:"section_scores"`
	Explanation            string                 `json:"explanation"`
}

// uploadedFile 已落盘并通过校验的上传文件
type uploadedFile struct {
	name    string
	path    string
	content []byte
	md5     string
}

// HandleMatch 处理 POST /match/ 请求
// 文档准备阶段的校验错误（空文件、非法PDF）使整个请求以400失败；
// 单个文档对的打分错误已在打分器边界被吸收，不会中断批处理
func (h *MatchHandler) HandleMatch(c context.Context, ctx *app.RequestContext) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "无法解析multipart表单: " + err.Error()})
		return
	}

	resumeHeaders := form.File["resumes"]
	jobHeaders := form.File["jobs"]
	if len(resumeHeaders) == 0 || len(jobHeaders) == 0 {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "必须至少提供一份简历和一份职位描述"})
		return
	}

	requestID := uuid.NewString()

	// 临时文件在请求结束后尽力清理，删除失败只记录日志
	var tempFiles []string
	defer func() {
		for _, path := range tempFiles {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				logger.Warn().Err(err).Str("path", path).Msg("删除临时文件失败")
			}
		}
	}()

	jobs, ok := h.materializeFiles(ctx, jobHeaders, "职位描述", &tempFiles)
	if !ok {
		return
	}
	resumes, ok := h.materializeFiles(ctx, resumeHeaders, "简历", &tempFiles)
	if !ok {
		return
	}
	if len(jobs) == 0 || len(resumes) == 0 {
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": "没有可处理的PDF文件"})
		return
	}

	results := make(map[string][]MatchItem, len(jobs))
	for _, job := range jobs {
		items := make([]MatchItem, 0, len(resumes))
		for _, resume := range resumes {
			res := h.scorer.ScorePair(c, resume.path, job.path)
			items = append(items, MatchItem{
				Resume:        resume.name,
				MatchPercent:  res.Score,
				SectionScores: res.SectionScores,
				Explanation:   res.Explanation,
			})
		}

		// 按匹配度降序排列
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].MatchPercent > items[j].MatchPercent
		})

		// 归一化只在同一职位的批次内进行
		raw := make([]float64, len(items))
		for i, item := range items {
			raw[i] = item.MatchPercent
		}
		for i, v := range matching.NormalizeScores(raw) {
			items[i].NormalizedMatchPercent = matching.Round2(v)
		}

		results[job.name] = items
	}

	// 归档与历史记录都是尽力而为的副作用，绝不使请求失败
	h.archiveDocuments(c, append(append([]*uploadedFile{}, jobs...), resumes...))
	h.saveHistory(c, requestID, results)

	logger.Info().
		Str("request_id", requestID).
		Int("jobs", len(jobs)).
		Int("resumes", len(resumes)).
		Msg("匹配请求处理完成")

	ctx.JSON(consts.StatusOK, results)
}

// materializeFiles 将上传的文件落盘为临时文件并校验
// 非PDF扩展名的文件跳过并告警；空文件或魔数校验失败写出400响应并返回 ok=false
func (h *MatchHandler) materializeFiles(ctx *app.RequestContext, headers []*multipart.FileHeader, kind string, tempFiles *[]string) ([]*uploadedFile, bool) {
	files := make([]*uploadedFile, 0, len(headers))
	for _, fh := range headers {
		if !strings.HasSuffix(strings.ToLower(fh.Filename), constants.PDFFileExtension) {
			logger.Warn().Str("file", fh.Filename).Msgf("跳过非PDF%s文件", kind)
			continue
		}

		f, err := fh.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开上传文件失败: " + fh.Filename})
			return nil, false
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取上传文件失败: " + fh.Filename})
			return nil, false
		}

		if len(content) < constants.MinUploadFileBytes {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": kind + "文件为空或已损坏: " + fh.Filename})
			return nil, false
		}

		tmp, err := os.CreateTemp("", "matcher-*"+constants.PDFFileExtension)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "创建临时文件失败"})
			return nil, false
		}
		*tempFiles = append(*tempFiles, tmp.Name())
		if _, err := tmp.Write(content); err != nil {
			tmp.Close()
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "写入临时文件失败"})
			return nil, false
		}
		tmp.Close()

		if !parser.IsValidPDF(tmp.Name()) {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "无效的PDF文件: " + fh.Filename})
			return nil, false
		}

		files = append(files, &uploadedFile{
			name:    fh.Filename,
			path:    tmp.Name(),
			content: content,
			md5:     pkgutils.CalculateMD5(content),
		})
	}
	return files, true
}

// archiveDocuments 按内容哈希归档上传的文档，相同内容只归档一次
func (h *MatchHandler) archiveDocuments(ctx context.Context, files []*uploadedFile) {
	if h.storage == nil || h.storage.MinIO == nil {
		return
	}
	seen := make(map[string]bool, len(files))
	for _, file := range files {
		if seen[file.md5] {
			continue
		}
		seen[file.md5] = true
		if _, err := h.storage.MinIO.ArchiveDocument(ctx, file.md5, file.name, bytes.NewReader(file.content), int64(len(file.content))); err != nil {
			logger.Warn().Err(err).Str("file", file.name).Msg("归档文档失败")
		}
	}
}

// saveHistory 将本次请求的所有匹配结果写入历史表
func (h *MatchHandler) saveHistory(ctx context.Context, requestID string, results map[string][]MatchItem) {
	if h.storage == nil || h.storage.MySQL == nil {
		return
	}

	var records []models.MatchRecord
	for jobName, items := range results {
		for _, item := range items {
			scoresJSON, err := json.Marshal(item.SectionScores)
			if err != nil {
				scoresJSON = []byte("{}")
			}
			records = append(records, models.MatchRecord{
				RequestUUID:       requestID,
				JobFileName:       jobName,
				ResumeFileName:    item.Resume,
				MatchPercent:      item.MatchPercent,
				NormalizedPercent: item.NormalizedMatchPercent,
				SectionScores:     datatypes.JSON(scoresJSON),
				Explanation:       item.Explanation,
			})
		}
	}

	if err := h.storage.MySQL.SaveMatchRecords(ctx, records); err != nil {
		logger.Warn().Err(err).Str("request_id", requestID).Msg("写入匹配历史失败")
	}
}
