package dataset

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/aeroml/pkg/errors"
)

// TrainTestSplit はデータセットを訓練セットとテストセットに分割する。
//
// 分割は決定的な擬似乱数順列に基づく: 同じシードと同じデータセットからは
// 常に同じ分割が得られる。訓練セットは ⌈trainFrac·N⌉ 行、テストセットは
// 残りの行を受け取り、両者は互いに素である。
//
// パラメータ:
//   - ds: クリーニング済みデータセット
//   - trainFrac: 訓練セットの割合（0 < trainFrac < 1、基準分析では0.75）
//   - seed: 順列を決定するシード
func TrainTestSplit(ds *Dataset, trainFrac float64, seed uint64) (train, test *Dataset, err error) {
	if ds == nil || ds.NumRows() == 0 {
		return nil, nil, errors.NewModelError("dataset.TrainTestSplit", "empty dataset", errors.ErrEmptyData)
	}
	if trainFrac <= 0 || trainFrac >= 1 {
		return nil, nil, errors.NewValueError("dataset.TrainTestSplit", "trainFrac must be in (0, 1)")
	}

	n := ds.NumRows()
	nTrain := int(math.Ceil(trainFrac * float64(n)))
	if nTrain >= n {
		return nil, nil, errors.NewValueError("dataset.TrainTestSplit", "train fraction leaves an empty test set")
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	trainIdx := append([]int(nil), perm[:nTrain]...)
	testIdx := append([]int(nil), perm[nTrain:]...)
	// 部分集合内では元の時系列順を保つ
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	train, err = ds.Subset(trainIdx)
	if err != nil {
		return nil, nil, err
	}
	test, err = ds.Subset(testIdx)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// Fold は交差検証の1分割を表す
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold はK-分割交差検証の分割器
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    uint64
}

// NewKFold は新しいKFoldを作成する。nSplitsが2未満の場合はデフォルトの10を使う。
func NewKFold(nSplits int, shuffle bool, seed uint64) *KFold {
	if nSplits < 2 {
		nSplits = 10
	}
	return &KFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// Split はn個の観測に対する各分割の訓練・テストインデックスを生成する。
// 全てのテストインデックスを合わせると [0, n) をちょうど一度ずつ覆う。
func (kf *KFold) Split(n int) []Fold {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if kf.Shuffle {
		rng := rand.New(rand.NewPCG(kf.Seed, kf.Seed))
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	current := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		testIndices := append([]int(nil), indices[current:current+testSize]...)

		inTest := make(map[int]bool, testSize)
		for _, idx := range testIndices {
			inTest[idx] = true
		}

		trainIndices := make([]int, 0, n-testSize)
		for _, idx := range indices {
			if !inTest[idx] {
				trainIndices = append(trainIndices, idx)
			}
		}

		folds[i] = Fold{TrainIndices: trainIndices, TestIndices: testIndices}
		current += testSize
	}

	return folds
}
