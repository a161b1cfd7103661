package help

const QuickstartYAML = `# cohortviz Quick Start

inputs:
  names: "First column holds one name per row (CSV, XLSX or HTML table)"
  categories: "Any named column, e.g. 专业, for suffix-by-category"
  regions: "A region column (province or city) and a count column"

usage: "cohortviz [global flags] <command> [flags] <file>; flags go before the file"

commands:
  repeated_substrings: |
    cohortviz repeats 姓名.csv
    cohortviz repeats --min-length 3 --top 10 --format yaml 姓名.csv

  suffixes_by_category: |
    cohortviz suffixes --category 专业 学生.csv

  word_clouds: |
    cohortviz wordcloud --preset surnames 姓名.csv
    cohortviz wordcloud --preset characters 姓名.csv
    cohortviz wordcloud --preset schools 毕业学校.csv

  maps: |
    cohortviz choropleth --preset china --region-column province --value-column value 省份.csv
    cohortviz choropleth --preset shandong --region-column city --value-column value 城市.csv

  history: |
    cohortviz --record repeats 姓名.csv
    cohortviz runs list
    cohortviz runs show 3

config:
  file: "cohortviz.yaml (or --config / COHORTVIZ_CONFIG); missing default file is fine"
  env: ".env is loaded before flags are read"
  font: |
    font:
      path: simkai.ttf   # the default; the run fails if it is missing
      # path: ""         # built-in fonts, no CJK glyphs (a warning is logged)
      typeface: SimKai
  offsets: |
    maps:
      china:
        offsets:
          香港: [1.4, -1.8]   # degrees; label drawn with a leader line

outputs:
  repeats: "name_repeat_bar.png"
  suffixes: "name_suffix_by_category.png"
  wordcloud: "name_wordcloud.png, name_wordcloud_2.png, school_wordcloud.png"
  choropleth: "china_heatmap_blue_labels_offset_bj_tj_he_prd.png, shandong_city_heatmap_yourdata.png"
  manifest: "<output>.summary.yaml with --manifest"

behavior:
  - "Substrings of length >= min-length counted over all names; kept when count >= 2"
  - "Ties keep first-seen order"
  - "No repeats: message printed, no image, exit 0"
  - "Boundary files are cached under --cache-dir"
  - "Every run recomputes from the input; history is write-only"
`
