// Package pipeline drives a CSV upload through parsing, analysis, and
// report rendering as one synchronous run.
package pipeline

// Stage 정의 (SSOT)
// 모든 로그와 응답에서 이 상수를 사용해야 함
//
// 흐름:
//   RECEIVED → PARSED → ANALYZED → RENDERED → SERVED
//   실패 시 어느 단계에서든 FAILED로 종료

// Stage represents a step in the profiling pipeline
type Stage string

const (
	// StageReceived: 업로드 수신 및 저장
	// 책임: 요청 검증, 입력 파일 저장
	// 위치: internal/web/handlers/
	StageReceived Stage = "RECEIVED"

	// StageParsed: CSV 디코딩 및 파싱
	// 책임: 인코딩/구분자 감지, 행/열 구성
	// 위치: internal/dataset/
	StageParsed Stage = "PARSED"

	// StageAnalyzed: 통계 분석
	// 책임: 타입 추론, 통계량, 상관관계, 인사이트
	// 위치: internal/profile/
	StageAnalyzed Stage = "ANALYZED"

	// StageRendered: PDF 리포트 생성
	// 책임: 차트 생성, PDF 레이아웃, 출력 저장
	// 위치: internal/report/
	StageRendered Stage = "RENDERED"

	// StageServed: 리포트 다운로드 제공
	// 책임: 리포트 파일 전송
	// 위치: internal/web/handlers/
	StageServed Stage = "SERVED"

	// StageFailed: 종료 상태, 어느 단계에서든 진입 가능
	StageFailed Stage = "FAILED"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// Description returns a short description of the stage
func (s Stage) Description() string {
	switch s {
	case StageReceived:
		return "upload received and stored"
	case StageParsed:
		return "CSV decoded into rows and columns"
	case StageAnalyzed:
		return "statistics and insights computed"
	case StageRendered:
		return "PDF report generated"
	case StageServed:
		return "report delivered for download"
	case StageFailed:
		return "run aborted"
	default:
		return "unknown"
	}
}

// AllStages returns the happy-path stages in execution order
func AllStages() []Stage {
	return []Stage{
		StageReceived,
		StageParsed,
		StageAnalyzed,
		StageRendered,
		StageServed,
	}
}

// IsValidStage checks if a stage string is valid
func IsValidStage(s string) bool {
	if s == string(StageFailed) {
		return true
	}
	for _, stage := range AllStages() {
		if string(stage) == s {
			return true
		}
	}
	return false
}
