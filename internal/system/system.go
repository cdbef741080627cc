package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
)

// RaiseFileLimit поднимает лимит открытых файлов: PNG-последовательность и
// ffmpeg держат много дескрипторов одновременно.
func RaiseFileLimit(limit uint64) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}
	if rLimit.Cur >= limit {
		return
	}

	rLimit.Cur = limit
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
		return
	}
	fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
}

// AssetExtensions are tried in order when resolving an asset handle.
var AssetExtensions = []string{".png", ".jpg", ".jpeg"}

// ResolveAsset находит файл для handle в dir. Если найдено несколько
// расширений, берется самый свежий файл.
func ResolveAsset(dir, handle string) (string, error) {
	if handle == "" {
		return "", fmt.Errorf("пустой идентификатор ресурса")
	}

	var latestFile string
	var latestTime time.Time
	for _, ext := range AssetExtensions {
		path := filepath.Join(dir, handle+ext)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if latestFile == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = path
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найден ресурс %q (%s): %w",
			dir, handle, strings.Join(AssetExtensions, ", "), os.ErrNotExist)
	}
	return latestFile, nil
}

// HasFFmpeg сообщает, доступен ли ffmpeg в PATH.
func HasFFmpeg() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// Аппаратные энкодеры в порядке приоритета:
// 1. MacOS (VideoToolbox)
// 2. NVIDIA (NVENC)
// Иначе программный libx264.
var hardwareEncoders = []string{"h264_videotoolbox", "h264_nvenc"}

const SoftwareEncoder = "libx264"

var (
	encoderOnce sync.Once
	encoderName string
)

// DetectH264Encoder возвращает лучший доступный H.264 энкодер. Список
// энкодеров ffmpeg запрашивается один раз за процесс.
func DetectH264Encoder() string {
	encoderOnce.Do(func() {
		out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
		encoderName = pickEncoder(string(out), err)
	})
	return encoderName
}

func pickEncoder(encoders string, err error) string {
	if err != nil {
		return SoftwareEncoder
	}
	for _, name := range hardwareEncoders {
		if strings.Contains(encoders, name) {
			return name
		}
	}
	return SoftwareEncoder
}
