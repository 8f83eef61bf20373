package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/ivlev/paintbynumbers/internal/config"
	"github.com/ivlev/paintbynumbers/internal/engine"
	"github.com/ivlev/paintbynumbers/internal/export"
	"github.com/ivlev/paintbynumbers/internal/legend"
	"github.com/ivlev/paintbynumbers/internal/palette"
	"github.com/ivlev/paintbynumbers/internal/source"
	"github.com/ivlev/paintbynumbers/internal/system"
)

var buildVersion = "dev"

func main() {
	// Создаем нужные директории, если их нет
	dirs := []string{"input", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	defaults := config.Default()

	configPtr := flag.String("config", "", "YAML-файл с настройками (флаги имеют приоритет)")
	inputPtr := flag.String("input", "", "Путь к изображению или PDF (по умолчанию: самый свежий файл в input/)")
	outputPtr := flag.String("output", "", "Путь к шаблону PNG (если пусто, генерируется автоматически в output/)")
	blockSizePtr := flag.Int("block-size", defaults.BlockSize, "Размер блока в пикселях (5-30)")
	sizesPtr := flag.String("sizes", "", "Дополнительные размеры блока через запятую, например 5,15,20")
	maxColorsPtr := flag.Int("max-colors", defaults.MaxColors, "Максимум цветов в палитре")
	maxWidthPtr := flag.Int("max-width", defaults.MaxWidth, "Рабочая ширина изображения (0 - без уменьшения)")
	resamplePtr := flag.String("resample", defaults.Resample, "Интерполяция: nearest, bilinear, approx-bilinear, catmullrom")
	pagePtr := flag.Int("page", 0, "Страница PDF или номер изображения в папке (с 0)")
	dpiPtr := flag.Int("dpi", defaults.DPI, "DPI для PDF")
	workersPtr := flag.Int("workers", defaults.Workers, "Потоки")
	basicFontPtr := flag.Bool("basic-font", false, "Растровый шрифт 7x13 вместо Go Regular")
	legendPtr := flag.Bool("legend", defaults.Legend, "Сохранить легенду цветов рядом с шаблоном")
	qrPtr := flag.Bool("qr", false, "Добавить QR-код со списком цветов в легенду")
	palettePtr := flag.Bool("palette", defaults.PaletteFile, "Сохранить палитру в YAML")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	cfg := defaults
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения конфигурации: %v", err)
		}
		cfg = loaded
		fmt.Printf("[*] Конфигурация: %s\n", *configPtr)
	}

	// Явно заданные флаги перекрывают значения из файла
	var sizesErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPtr
		case "output":
			cfg.OutputPath = *outputPtr
		case "block-size":
			cfg.BlockSize = *blockSizePtr
		case "sizes":
			cfg.Sizes, sizesErr = parseSizes(*sizesPtr)
		case "max-colors":
			cfg.MaxColors = *maxColorsPtr
		case "max-width":
			cfg.MaxWidth = *maxWidthPtr
		case "resample":
			cfg.Resample = *resamplePtr
		case "page":
			cfg.Page = *pagePtr
		case "dpi":
			cfg.DPI = *dpiPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "basic-font":
			cfg.BasicFont = *basicFontPtr
		case "legend":
			cfg.Legend = *legendPtr
		case "palette":
			cfg.PaletteFile = *palettePtr
		case "qr":
			cfg.LegendQR = *qrPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	if sizesErr != nil {
		log.Fatalf("[-] Ошибка: -sizes: %v", sizesErr)
	}
	cfg.BuildVersion = buildVersion

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка параметров: %v", err)
	}

	if cfg.InputPath == "" {
		latest, err := system.FindLatestInput("input")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите изображение в input/", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", cfg.InputPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	startTime := time.Now()

	src, err := source.Open(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("ошибка инициализации источника: %w", err)
	}
	defer src.Close()

	if src.PageCount() == 0 {
		return fmt.Errorf("в источнике нет страниц или изображений")
	}
	pw, ph, err := src.GetPageDimensions(cfg.Page)
	if err != nil {
		return fmt.Errorf("ошибка чтения размеров страницы %d: %w", cfg.Page, err)
	}
	img, err := src.RenderPage(cfg.Page, cfg.DPI)
	if err != nil {
		return fmt.Errorf("ошибка чтения страницы %d: %w", cfg.Page, err)
	}

	session, err := engine.NewSession(cfg)
	if err != nil {
		return err
	}

	fmt.Println("--- [PAINT BY NUMBERS] ---")
	fmt.Printf("[*] Источник: %s | Страниц: %d | Страница %d: %.0fx%.0f\n", cfg.InputPath, src.PageCount(), cfg.Page, pw, ph)
	fmt.Printf("[*] Исходный размер: %dx%d | Рабочая ширина: %d\n", img.Bounds().Dx(), img.Bounds().Dy(), cfg.MaxWidth)
	fmt.Printf("[*] Блок: %dpx | Цветов: до %d | Потоков: %d\n", cfg.BlockSize, cfg.MaxColors, cfg.Workers)
	fmt.Println("--------------------------")

	res, err := session.Load(ctx, img)
	if err != nil {
		return err
	}
	w, h := session.Source().Width, session.Source().Height
	fmt.Printf("[*] Рабочий размер: %dx%d\n", w, h)

	outPath := export.OutputPath(cfg.OutputPath, cfg.InputPath, "output", time.Now())
	results := []*engine.Result{res}
	if err := save(cfg, res, outPath, w, h); err != nil {
		return err
	}

	// Повторная обработка того же изображения с другими размерами блока
	for _, size := range cfg.Sizes {
		if size == cfg.BlockSize {
			continue
		}
		r, err := session.SetBlockSize(ctx, size)
		if err != nil {
			return fmt.Errorf("блок %d: %w", size, err)
		}
		results = append(results, r)
		if err := save(cfg, r, export.WithBlockSize(outPath, size), w, h); err != nil {
			return err
		}
	}

	if cfg.ShowStats {
		total := time.Since(startTime)
		host, err := system.ReadHostStats()
		if err != nil {
			log.Printf("[!] Не удалось получить системные метрики: %v", err)
		}
		fmt.Print(engine.Report(cfg.BuildVersion, cfg.InputPath, results, total, host))

		if err := engine.AppendBenchmarkLog("benchmark.log", cfg.BuildVersion, cfg.InputPath, results, total, time.Now()); err != nil {
			fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		}
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", outPath)
	return nil
}

func save(cfg *config.Config, res *engine.Result, path string, w, h int) error {
	if errors.Is(res.Notice, palette.ErrNoOpaquePixels) {
		fmt.Printf("[!] Блок %d: нет непрозрачных пикселей, номера не расставлены\n", res.BlockSize)
	}

	if err := export.SavePNG(res.Annotated.Image(), path); err != nil {
		return fmt.Errorf("ошибка сохранения шаблона: %w", err)
	}
	fmt.Printf("[>] Шаблон (блок %d): %s | Цветов: %d | Номеров: %d\n", res.BlockSize, path, len(res.Palette), len(res.Labels))

	if cfg.PaletteFile {
		palettePath := export.Sibling(path, "_palette.yaml")
		pf := export.NewPaletteFile(res.Palette, res.BlockSize, w, h, cfg.InputPath)
		if err := export.WritePalette(pf, palettePath); err != nil {
			return fmt.Errorf("ошибка сохранения палитры: %w", err)
		}
		fmt.Printf("[>] Палитра: %s\n", palettePath)
	}

	if cfg.Legend {
		lcfg := legend.DefaultConfig()
		lcfg.QR = cfg.LegendQR
		legend.ScaleForWidth(&lcfg, w)
		sheet, err := legend.Render(res.Palette, lcfg)
		if err != nil {
			return fmt.Errorf("ошибка построения легенды: %w", err)
		}
		legendPath := export.Sibling(path, "_legend.png")
		if err := export.SavePNG(sheet, legendPath); err != nil {
			return fmt.Errorf("ошибка сохранения легенды: %w", err)
		}
		fmt.Printf("[>] Легенда: %s\n", legendPath)
	}
	return nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("неверный размер %q: %w", part, err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
